package cocktails

import (
	"cocktails/tools"
)

type ToolProvider interface {
	GetTools() []tools.Tool
	GetTool(name string) (tools.Tool, error)
}
