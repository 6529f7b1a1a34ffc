package common

type contextKey string

const (
	RequestIDContextKey  contextKey = "request_id"
	WsSemaphoreLocalsKey string     = "ws_semaphore"
	ContainerLocalsKey   string     = "container"
)
