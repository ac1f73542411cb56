package generator

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// Fluentd source config for the local syslog listener. The port token is
// substituted by the caller once it has picked a port.
const fluentdSyslogSrcConf = `
<source>
  type syslog
  port %SYSLOG_PORT%
  bind 127.0.0.1
  protocol_type udp
  tag mdsd.syslog
</source>

# Generate the fields expected by the mdsd syslog collection schema.
<filter mdsd.syslog.**>
  type record_transformer
  enable_ruby
  <record>
    Ignore "syslog"
    Facility ${tag_parts[2]}
    Severity ${tag_parts[3]}
    EventTime ${time.strftime('%Y-%m-%dT%H:%M:%S%z')}
    SendingHost ${record["source_host"]}
    Msg ${record["message"]}
  </record>
  remove_keys host,ident,pid,message,source_host  # not used by mdsd
</filter>
`

var fluentdTailSrcTemplate = template.Must(template.New("fluentdTailSrc").Parse(`
# All monitored files
<source>
  @type tail
  path {{.FilePaths}}
  pos_file /var/opt/microsoft/omsagent/LAD/tmp/filelogs.pos
  tag mdsd.filelog.*
  format none
  message_key Msg
</source>

# Tag each record with its originating file
<filter mdsd.filelog.**>
  @type record_transformer
  <record>
    FileTag ${tag_suffix[2]}
  </record>
</filter>
`))

var fluentdOutMdsdTemplate = template.Must(template.New("fluentdOutMdsd").Parse(`
# Output to mdsd
<match mdsd.**>
    type mdsd
    log_level warn
    djsonsocket /var/run/mdsd/lad_mdsd_djson.socket  # Full path to mdsd dynamic json socket file
    acktimeoutms 5000  # max time in milliseconds to wait for mdsd acknowledge response. If 0, no wait.
{{.TagRegexCfgLine}}    num_threads 1
    buffer_chunk_limit 1000k
    buffer_type file
    buffer_path /var/opt/microsoft/omsagent/state/out_mdsd*.buffer
    buffer_queue_limit 128
    flush_interval 10s
    retry_limit 3
    retry_wait 10s
</match>
`))

const fluentdTagRegexCfgLine = `    mdsd_tag_regex_patterns [ "^mdsd\\.syslog" ] # fluentd tag patterns whose match will be used as mdsd source name
`

// FluentdSyslogSrcConfig returns the fluentd syslog source config, or ""
// when syslog collection is disabled.
func (g *Generator) FluentdSyslogSrcConfig() string {
	if g.syslogDisabled() {
		return ""
	}
	return fluentdSyslogSrcConf
}

// FluentdFileLogSrcConfig returns the fluentd tail source config watching
// every configured file, or "" when no files are configured.
func (g *Generator) FluentdFileLogSrcConfig() (string, error) {
	if g.fluentdTailConf != nil {
		return *g.fluentdTailConf, nil
	}

	conf := ""
	if len(g.fileLogs) > 0 {
		_, _, files := g.fileLogMaps()
		var buf bytes.Buffer
		err := fluentdTailSrcTemplate.Execute(&buf, struct{ FilePaths string }{
			FilePaths: strings.Join(files, ","),
		})
		if err != nil {
			return "", fmt.Errorf("render fluentd tail source config: %w", err)
		}
		conf = buf.String()
	}

	g.fluentdTailConf = &conf
	return conf, nil
}

// FluentdOutMdsdConfig returns the fluentd output config feeding mdsd. It is
// always produced; the tag-pattern restriction is present only when syslog
// collection is enabled.
func (g *Generator) FluentdOutMdsdConfig() (string, error) {
	if g.fluentdOutMdsdConf != nil {
		return *g.fluentdOutMdsdConf, nil
	}

	tagRegexCfgLine := ""
	if !g.syslogDisabled() {
		tagRegexCfgLine = fluentdTagRegexCfgLine
	}

	var buf bytes.Buffer
	err := fluentdOutMdsdTemplate.Execute(&buf, struct{ TagRegexCfgLine string }{
		TagRegexCfgLine: tagRegexCfgLine,
	})
	if err != nil {
		return "", fmt.Errorf("render fluentd out_mdsd config: %w", err)
	}

	conf := buf.String()
	g.fluentdOutMdsdConf = &conf
	return conf, nil
}
