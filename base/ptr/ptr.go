package ptr

// String return a pointer to the input value
func String(value string) *string {
	return &value
}

// Int return a pointer to the input value
func Int(value int) *int {
	return &value
}

// Bool return a pointer to the input value
func Bool(value bool) *bool {
	return &value
}
