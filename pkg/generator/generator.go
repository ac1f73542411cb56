// Package generator renders the log-collection configuration artifacts
// consumed by rsyslog, syslog-ng, the fluentd pipeline and mdsd from the
// extension's parsed settings. The generator performs no I/O: every
// operation returns the artifact text and the caller writes it out.
package generator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/azlinux-tools/ladcfg/pkg/config"
	"github.com/azlinux-tools/ladcfg/pkg/syslognames"
)

// ErrInvalidConfig is wrapped by every validation failure surfaced from the
// generator: reserved sink names, unknown sink references, malformed sink
// definitions, incomplete file-log entries and unknown syslog names.
var ErrInvalidConfig = errors.New("invalid logging configuration")

const (
	// SyslogPortToken is left verbatim in generated artifacts; the caller
	// substitutes the port it assigned to the local syslog listener.
	SyslogPortToken = "%SYSLOG_PORT%"

	// DefaultSyslogNGSource is the source identifier syslog-ng rules
	// reference on most distributions.
	DefaultSyslogNGSource = "src"
)

// Options carries the three policy inputs plus the syslog-ng source
// identifier (DefaultSyslogNGSource when empty).
type Options struct {
	SyslogEvents   *config.SyslogEvents
	FileLogs       []config.FileLogEntry
	Sinks          *config.SinkConfiguration
	SyslogNGSource string
}

// Generator renders the configuration artifacts. Each artifact is computed
// once per instance and cached; the settings are treated as immutable for
// the instance's lifetime. Instances are single-owner and not safe for
// concurrent use.
type Generator struct {
	syslogEvents   *config.SyslogEvents
	fileLogs       []config.FileLogEntry
	sinks          *config.SinkConfiguration
	syslogNGSource string

	facSev map[string]string

	rsyslogConf        *string
	syslogNGConf       *string
	mdsdSyslogConf     *string
	mdsdFileLogConf    *string
	fluentdTailConf    *string
	fluentdOutMdsdConf *string
}

func New(opts Options) *Generator {
	source := opts.SyslogNGSource
	if source == "" {
		source = DefaultSyslogNGSource
	}

	var facSev map[string]string
	if opts.SyslogEvents != nil {
		facSev = opts.SyslogEvents.SyslogEventConfiguration
	}

	return &Generator{
		syslogEvents:   opts.SyslogEvents,
		fileLogs:       opts.FileLogs,
		sinks:          opts.Sinks,
		syslogNGSource: source,
		facSev:         facSev,
	}
}

func (g *Generator) syslogDisabled() bool {
	return len(g.facSev) == 0
}

// RsyslogConfig returns the rsyslog snippet forwarding the selected
// facility/severity pairs to the local relay, or "" when syslog collection
// is disabled.
func (g *Generator) RsyslogConfig() (string, error) {
	if g.rsyslogConf != nil {
		return *g.rsyslogConf, nil
	}

	conf := ""
	if !g.syslogDisabled() {
		var b strings.Builder
		for _, fac := range sortedKeys(g.facSev) {
			facName, sevName, err := g.shortNames(fac)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&b, "%s.%s  @127.0.0.1:%s\n", facName, sevName, SyslogPortToken)
		}
		conf = b.String()
	}

	g.rsyslogConf = &conf
	return conf, nil
}

// SyslogNGConfig returns the syslog-ng log rules for the selected
// facility/severity pairs, or "" when syslog collection is disabled.
func (g *Generator) SyslogNGConfig() (string, error) {
	if g.syslogNGConf != nil {
		return *g.syslogNGConf, nil
	}

	conf := ""
	if !g.syslogDisabled() {
		var b strings.Builder
		for _, fac := range sortedKeys(g.facSev) {
			facName, sevName, err := g.shortNames(fac)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&b, "log { source(%s); filter(f_LAD_oms_f_%s); filter(f_LAD_oms_ml_%s); destination(d_LAD_oms); };\n",
				g.syslogNGSource, facName, sevName)
		}
		conf = b.String()
	}

	g.syslogNGConf = &conf
	return conf, nil
}

func (g *Generator) shortNames(facility string) (string, string, error) {
	facName, err := syslognames.ShortName(facility)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	sevName, err := syslognames.ShortName(g.facSev[facility])
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return facName, sevName, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// splitSinkNames splits a comma-separated sink list, dropping empty tokens.
func splitSinkNames(sinks string) []string {
	var names []string
	for _, name := range strings.Split(sinks, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}
