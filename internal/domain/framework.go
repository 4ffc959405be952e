package domain

import "fmt"

// Framework identifies the kind of project an App is built from.
type Framework string

const (
	FrameworkNextJS Framework = "nextjs"
	FrameworkNode   Framework = "node"
	FrameworkStatic Framework = "static"
)

// Commands holds the build configuration suggested for a framework.
type Commands struct {
	Build  string
	Start  string
	Output string
}

// Frameworks returns all frameworks in display order.
func Frameworks() []Framework {
	return []Framework{FrameworkNextJS, FrameworkNode, FrameworkStatic}
}

// ParseFramework normalizes and validates a framework tag.
func ParseFramework(value string) (Framework, error) {
	f := Framework(normalize(value))
	if !f.Valid() {
		return "", fmt.Errorf("unknown framework %q", value)
	}
	return f, nil
}

// Valid reports whether f is a known framework.
func (f Framework) Valid() bool {
	switch f {
	case FrameworkNextJS, FrameworkNode, FrameworkStatic:
		return true
	}
	return false
}

// Label returns the short display name.
func (f Framework) Label() string {
	switch f {
	case FrameworkNextJS:
		return "Next.js"
	case FrameworkNode:
		return "Node"
	case FrameworkStatic:
		return "Static"
	default:
		return string(f)
	}
}

// Description is the one-line hint shown in the framework picker.
func (f Framework) Description() string {
	switch f {
	case FrameworkNextJS:
		return "React full-stack"
	case FrameworkNode:
		return "Express/Fastify server"
	case FrameworkStatic:
		return "HTML/CSS/JS"
	default:
		return ""
	}
}

// Defaults returns the default build, start and output settings.
func (f Framework) Defaults() Commands {
	switch f {
	case FrameworkNextJS:
		return Commands{Build: "next build", Start: "next start", Output: ".next"}
	case FrameworkNode:
		return Commands{Build: "npm run build", Start: "node dist/index.js"}
	case FrameworkStatic:
		return Commands{Build: "npm run build", Output: "dist"}
	default:
		return Commands{}
	}
}

// UsesStartCommand reports whether the framework runs a server process.
func (f Framework) UsesStartCommand() bool {
	return f == FrameworkNextJS || f == FrameworkNode
}

// UsesOutputDir reports whether the framework publishes a build directory.
func (f Framework) UsesOutputDir() bool {
	return f == FrameworkStatic
}
