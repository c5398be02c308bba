package util

// Param is a vehicle-scoped parameter for the state cache
type Param struct {
	Vehicle string
	Key     string
	Val     interface{}
}
