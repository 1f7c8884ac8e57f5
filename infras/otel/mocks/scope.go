package mocks

import "lodge/infras/otel"

// scopeImpl discards everything. Tests that care about spans assert on behaviour instead.
type scopeImpl struct{}

func NewScope() otel.Scope {
	return &scopeImpl{}
}

func (*scopeImpl) AddEvent(string, map[string]any) {}

func (*scopeImpl) End() {}

func (*scopeImpl) SetAttribute(string, any) {}

func (*scopeImpl) SetAttributes(map[string]any) {}

func (*scopeImpl) TraceError(error) {}

func (*scopeImpl) TraceIfError(error) {}
