package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type recorder struct {
	LogClient
	names []string
	tags  [][]string
}

func (r *recorder) Count(name string, value int64, tags []string, rate float64) error {
	r.names = append(r.names, name)
	r.tags = append(r.tags, tags)
	return nil
}

func (r *recorder) TimeInMilliseconds(name string, value float64, tags []string, rate float64) error {
	r.names = append(r.names, name)
	r.tags = append(r.tags, tags)
	return nil
}

func TestMetricsPrefixAndTags(t *testing.T) {
	req := require.New(t)
	rec := &recorder{}
	m := &Metrics{pkgName: "auction", cli: rec, tags: []string{"env:test"}}

	m.BumpSum("refresh.err", 1, "step", "snapshot")
	m.BumpTime("refresh.time").End()
	m.BumpSum("odd", 1, "dangling")

	req.Equal([]string{"auction.refresh.err", "auction.refresh.time", "auction.odd"}, rec.names)
	req.Equal([]string{"env:test", "step:snapshot"}, rec.tags[0])
	req.Equal([]string{"env:test"}, rec.tags[1])
	req.Equal([]string{"env:test"}, rec.tags[2])
}
