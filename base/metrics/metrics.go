/*
Package metrics wraps datadog-go to record auction and chain metrics.
Naming convention:
- Internal process time: *.time
- External latency: *.latency
- Error: *.err
*/
package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/spf13/viper"

	"github.com/x-xyz/auctiond/base/env"
	"github.com/x-xyz/auctiond/base/log"
)

const (
	// DdPort is the dogstatsd agent port
	DdPort = 8125
	// buffer 10 metrics before sending to statsd
	bufferMetrics = 10
)

var (
	initOnce sync.Once
	client   statsCli = &LogClient{}
)

type statsCli interface {
	Gauge(name string, value float64, tags []string, rate float64) error
	Count(name string, value int64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

// Ender stops a timer started by BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)

	BumpTime(key string, tags ...string) Ender
}

// initClient connects to the agent at datadog_host. Metrics are logged at
// debug level when no host is configured.
func initClient() {
	host := viper.GetString("datadog_host")
	if host == "" {
		return
	}
	addr := fmt.Sprintf("%s:%d", host, DdPort)
	c, err := statsd.NewBuffered(addr, bufferMetrics)
	if err != nil {
		log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Error("can't talk to datadog agent, fallback to log")
		return
	}
	log.Log().WithField("addr", addr).Info("connected to datadog agent")
	client = c
}

// New creates a metric client prefixing every key with pkgName
func New(pkgName string) Service {
	initOnce.Do(initClient)
	return &Metrics{
		pkgName: pkgName,
		cli:     client,
		tags: []string{
			"env:" + env.EnvName(),
			"app:" + env.AppName(),
		},
	}
}

// Metrics sends to datadog with a package prefix and static tags
type Metrics struct {
	pkgName string
	cli     statsCli
	tags    []string
}

func (mt *Metrics) key(k string) string {
	return mt.pkgName + "." + k
}

func (mt *Metrics) withTags(tags []string) []string {
	if len(tags)%2 != 0 {
		log.Log().WithField("tags", tags).Error("tag length needs to be multiple of 2")
		return mt.tags
	}
	res := make([]string, 0, len(mt.tags)+len(tags)/2)
	res = append(res, mt.tags...)
	for i := 0; i < len(tags); i += 2 {
		res = append(res, tags[i]+":"+tags[i+1])
	}
	return res
}

func (mt *Metrics) report(fn string, key string, err error) {
	if err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key, "func": fn}).Error("Bump fail")
	}
}

// BumpAvg bumps the average for the given key.
func (mt *Metrics) BumpAvg(key string, val float64, tags ...string) {
	mt.report("BumpAvg", key, mt.cli.Gauge(mt.key(key), val, mt.withTags(tags), 1))
}

// BumpSum bumps the sum for the given key.
func (mt *Metrics) BumpSum(key string, val float64, tags ...string) {
	mt.report("BumpSum", key, mt.cli.Count(mt.key(key), int64(val), mt.withTags(tags), 1))
}

// BumpHistogram bumps the histogram for the given key.
func (mt *Metrics) BumpHistogram(key string, val float64, tags ...string) {
	mt.report("BumpHistogram", key, mt.cli.Histogram(mt.key(key), val, mt.withTags(tags), 1))
}

// BumpTime starts a timer, call End on the result to record it:
//
//	defer s.BumpTime("my.function").End()
func (mt *Metrics) BumpTime(key string, tags ...string) Ender {
	return &timeTracker{mt: mt, key: key, tags: tags, start: time.Now()}
}

type timeTracker struct {
	mt    *Metrics
	key   string
	tags  []string
	start time.Time
}

func (t *timeTracker) End() {
	ms := float64(time.Since(t.start)) / float64(time.Millisecond)
	t.mt.report("BumpTime", t.key, t.mt.cli.TimeInMilliseconds(t.mt.key(t.key), ms, t.mt.withTags(t.tags), 1))
}
