package tools

import "context"

// Config class for tools
type Config struct {
	// title the name the model calls the tool by
	title string
	// description tells the model when to use the tool
	description string
	startHook   func(context.Context, Tool, string)
	endHook     func(context.Context, Tool, string, string)
	errorHook   func(context.Context, Tool, string, error)
}

func (c *Config) SetTitle(v string) {
	c.title = v
}

func (c Config) Title() string {
	return c.title
}

func (c *Config) SetDescription(v string) {
	c.description = v
}

func (c Config) Description() string {
	return c.description
}

func (c *Config) SetStartHook(fn func(context.Context, Tool, string)) {
	c.startHook = fn
}

func (c *Config) SetEndHook(fn func(context.Context, Tool, string, string)) {
	c.endHook = fn
}

func (c *Config) SetErrorHook(fn func(context.Context, Tool, string, error)) {
	c.errorHook = fn
}
