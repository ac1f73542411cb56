// Package syslognames maps canonical syslog facility/severity names to the
// short forms used in rsyslog and syslog-ng selectors.
package syslognames

import "fmt"

var shortNames = map[string]string{
	// facilities
	"LOG_AUTH":     "auth",
	"LOG_AUTHPRIV": "authpriv",
	"LOG_CRON":     "cron",
	"LOG_DAEMON":   "daemon",
	"LOG_FTP":      "ftp",
	"LOG_KERN":     "kern",
	"LOG_LOCAL0":   "local0",
	"LOG_LOCAL1":   "local1",
	"LOG_LOCAL2":   "local2",
	"LOG_LOCAL3":   "local3",
	"LOG_LOCAL4":   "local4",
	"LOG_LOCAL5":   "local5",
	"LOG_LOCAL6":   "local6",
	"LOG_LOCAL7":   "local7",
	"LOG_LPR":      "lpr",
	"LOG_MAIL":     "mail",
	"LOG_NEWS":     "news",
	"LOG_SYSLOG":   "syslog",
	"LOG_USER":     "user",
	"LOG_UUCP":     "uucp",
	// severities
	"LOG_EMERG":   "emerg",
	"LOG_ALERT":   "alert",
	"LOG_CRIT":    "crit",
	"LOG_ERR":     "err",
	"LOG_WARNING": "warning",
	"LOG_NOTICE":  "notice",
	"LOG_INFO":    "info",
	"LOG_DEBUG":   "debug",
}

// ShortName converts a canonical syslog name (e.g. "LOG_USER") to its short
// form (e.g. "user"). The match is exact and case sensitive.
func ShortName(name string) (string, error) {
	short, ok := shortNames[name]
	if !ok {
		return "", fmt.Errorf("invalid syslog name %q", name)
	}
	return short, nil
}
