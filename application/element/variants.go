package element

import (
	"login_automation/domain/entities"
	"login_automation/domain/interfaces"
)

const (
	ButtonTag = "button"
	LinkTag   = "a"
	InputTag  = "input"
	DivTag    = "div"
)

const (
	controlCaps = CanClick | CanRead
	inputCaps   = CanClick | CanRead | CanFill
	textCaps    = CanRead
)

// NewButton - clickable <button> located by class
func NewButton(session interfaces.Session, class string, opts ...Option) *Element {
	return New(session, ButtonTag, entities.ByClass(ButtonTag, class), controlCaps, opts...)
}

// NewLink - anchor used as a button, located by class
func NewLink(session interfaces.Session, class string, opts ...Option) *Element {
	return New(session, LinkTag, entities.ByClass(LinkTag, class), controlCaps, opts...)
}

// NewInput - text input located by class
func NewInput(session interfaces.Session, class string, opts ...Option) *Element {
	return New(session, InputTag, entities.ByClass(InputTag, class), inputCaps, opts...)
}

// NewInputByName - text input located by class and name
func NewInputByName(session interfaces.Session, class, name string, opts ...Option) *Element {
	return New(session, InputTag, entities.ByClassAndName(InputTag, class, name), inputCaps, opts...)
}

// NewTextBlock - read-only <div> used for banners, located by class
func NewTextBlock(session interfaces.Session, class string, opts ...Option) *Element {
	return New(session, DivTag, entities.ByClass(DivTag, class), textCaps, opts...)
}
