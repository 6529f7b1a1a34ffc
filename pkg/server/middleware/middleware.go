package middleware

import "github.com/gofiber/fiber/v2"

type Middleware interface {
	Middleware() fiber.Handler
}

type Transport struct {
	Middlewares []Middleware
}

func NewTransport(middlewares ...Middleware) *Transport {
	return &Transport{
		Middlewares: middlewares,
	}
}

// Apply registers the middlewares on r in declaration order.
func (t *Transport) Apply(r fiber.Router) {
	for _, m := range t.Middlewares {
		r.Use(m.Middleware())
	}
}
