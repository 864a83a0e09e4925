package mocks

import (
	"github.com/stretchr/testify/mock"
	"gopkg.in/telebot.v4"
)

// API is a mock of bot.API.
type API struct {
	mock.Mock
}

func (_m *API) Handle(endpoint interface{}, h telebot.HandlerFunc, m ...telebot.MiddlewareFunc) {
	args := []interface{}{endpoint, h}
	for _, mw := range m {
		args = append(args, mw)
	}
	_m.Called(args...)
}

func (_m *API) Start() {
	_m.Called()
}

func (_m *API) Stop() {
	_m.Called()
}

func (_m *API) Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error) {
	args := append([]interface{}{to, what}, opts...)
	ret := _m.Called(args...)

	r0, _ := ret.Get(0).(*telebot.Message)
	return r0, ret.Error(1)
}

// NewAPI creates an API whose expectations are asserted on cleanup.
func NewAPI(t testingT) *API {
	m := &API{}
	register(&m.Mock, t)

	return m
}
