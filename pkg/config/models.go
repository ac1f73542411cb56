package config

// Settings is the parsed diagnostic extension public settings relevant to
// log collection: which syslog facilities to capture, which files to tail,
// and the named sinks events can be routed to.
type Settings struct {
	SyslogEvents *SyslogEvents     `yaml:"syslogEvents,omitempty"`
	FileLogs     []FileLogEntry    `yaml:"fileLogs,omitempty"`
	SinksConfig  SinkConfiguration `yaml:"sinksConfig,omitempty"`
}

// SyslogEvents selects syslog facilities for capture. The mapping is
// facility name to minimum severity, both in canonical form (e.g.
// "LOG_USER": "LOG_ERR"). An empty mapping disables syslog collection.
type SyslogEvents struct {
	Sinks                    string            `yaml:"sinks,omitempty"`
	SyslogEventConfiguration map[string]string `yaml:"syslogEventConfiguration"`
}

// FileLogEntry describes one file to tail. Lines are routed to the storage
// table and/or the comma-separated sinks; at least one of the two must be
// set.
type FileLogEntry struct {
	File  string `yaml:"file"`
	Table string `yaml:"table,omitempty"`
	Sinks string `yaml:"sinks,omitempty"`
}

const (
	SinkTypeJSONBlob = "JsonBlob"
	SinkTypeEventHub = "EventHub"
)

// SinkDefinition is one named destination from the sinksConfig setting.
// EventHub sinks carry the SAS URL events are published to.
type SinkDefinition struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	SasURL string `yaml:"sasURL,omitempty"`
}

// SinkConfiguration is the sinksConfig setting: a list of named sinks,
// queried by name.
type SinkConfiguration struct {
	Sinks []SinkDefinition `yaml:"sink,omitempty"`
}

// GetSinkByName returns the sink with the given name, or nil if none is
// defined. When a name is defined more than once the last definition wins.
func (sc *SinkConfiguration) GetSinkByName(name string) *SinkDefinition {
	var found *SinkDefinition
	for i := range sc.Sinks {
		if sc.Sinks[i].Name == name {
			found = &sc.Sinks[i]
		}
	}
	return found
}
