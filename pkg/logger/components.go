package logger

const (
	ComponentMain      = "main"
	ComponentSettings  = "settings"
	ComponentGenerator = "generator"
	ComponentMdsd      = "mdsd"
	ComponentIdentity  = "identity"
	ComponentEvents    = "events"
)
