package generator

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/azlinux-tools/ladcfg/pkg/config"
)

const (
	// ReservedSyslogTable is the default destination table for syslog
	// events. It is not a valid sink name.
	ReservedSyslogTable = "LinuxSyslog"

	mdsdSyslogSourceName    = "mdsd.syslog"
	mdsdFileLogSourcePrefix = "mdsd.filelog"
)

// sinkRoute is the resolved routing for one named sink: the destination
// event name, the optional storeType attribute, and for EventHub sinks the
// streaming annotation carrying the publish URL. Both the syslog and the
// file-log document builders consume it identically, so a given sink
// definition always yields the same fragments.
type sinkRoute struct {
	eventName  string
	storeType  string
	annotation *ehAnnotation
}

type ehAnnotation struct {
	name string
	url  string
}

func (g *Generator) resolveSinkRoute(name string) (*sinkRoute, error) {
	var sink *config.SinkDefinition
	if g.sinks != nil {
		sink = g.sinks.GetSinkByName(name)
	}
	if sink == nil {
		return nil, fmt.Errorf("%w: sink %q is not defined in sinksConfig", ErrInvalidConfig, name)
	}

	switch sink.Type {
	case "":
		return nil, fmt.Errorf("%w: no type defined for sink %q in sinksConfig", ErrInvalidConfig, name)
	case config.SinkTypeJSONBlob:
		return &sinkRoute{eventName: name, storeType: "JsonBlob"}, nil
	case config.SinkTypeEventHub:
		if sink.SasURL == "" {
			return nil, fmt.Errorf("%w: no sasURL specified for EventHub sink %q", ErrInvalidConfig, name)
		}
		// The URL is emitted inside a CDATA section.
		if strings.Contains(sink.SasURL, "]]>") {
			return nil, fmt.Errorf("%w: sasURL for EventHub sink %q contains a CDATA terminator", ErrInvalidConfig, name)
		}
		return &sinkRoute{
			eventName:  name,
			storeType:  "local",
			annotation: &ehAnnotation{name: name, url: sink.SasURL},
		}, nil
	default:
		return nil, fmt.Errorf("%w: sink type %q (sink %q) is not supported", ErrInvalidConfig, sink.Type, name)
	}
}

// mdsdDoc assembles one MonitoringManagement document: sources, event
// routes and event-streaming annotations.
type mdsdDoc struct {
	doc         *etree.Document
	sources     *etree.Element
	mdsdEvents  *etree.Element
	annotations *etree.Element
}

func newMdsdDoc() *mdsdDoc {
	doc := etree.NewDocument()

	root := doc.CreateElement("MonitoringManagement")
	root.CreateAttr("eventVersion", "2")
	root.CreateAttr("namespace", "")
	root.CreateAttr("timestamp", "2014-12-01T20:00:00.000")
	root.CreateAttr("version", "1.0")

	sources := root.CreateElement("Sources")
	mdsdEvents := root.CreateElement("Events").CreateElement("MdsdEvents")
	annotations := root.CreateElement("EventStreamingAnnotations")

	return &mdsdDoc{
		doc:         doc,
		sources:     sources,
		mdsdEvents:  mdsdEvents,
		annotations: annotations,
	}
}

func (d *mdsdDoc) addSource(name string) {
	source := d.sources.CreateElement("Source")
	source.CreateAttr("name", name)
	source.CreateAttr("dynamic_schema", "true")
}

func (d *mdsdDoc) addEventSource(sourceName string) *etree.Element {
	eventSource := d.mdsdEvents.CreateElement("MdsdEventSource")
	eventSource.CreateAttr("source", sourceName)
	return eventSource
}

func (d *mdsdDoc) addRouteEvent(eventSource *etree.Element, eventName, storeType string) {
	route := eventSource.CreateElement("RouteEvent")
	route.CreateAttr("dontUsePerNDayTable", "true")
	route.CreateAttr("eventName", eventName)
	route.CreateAttr("priority", "High")
	if storeType != "" {
		route.CreateAttr("storeType", storeType)
	}
}

func (d *mdsdDoc) addAnnotation(a *ehAnnotation) {
	annotation := d.annotations.CreateElement("EventStreamingAnnotation")
	annotation.CreateAttr("name", a.name)
	publisher := annotation.CreateElement("EventPublisher")
	publisher.CreateElement("Content")
	publisher.CreateElement("Key").CreateCData(a.url)
}

func (d *mdsdDoc) addSinkRoute(eventSource *etree.Element, route *sinkRoute) {
	d.addRouteEvent(eventSource, route.eventName, route.storeType)
	if route.annotation != nil {
		d.addAnnotation(route.annotation)
	}
}

func (d *mdsdDoc) String() (string, error) {
	d.doc.Indent(2)
	s, err := d.doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("serialize mdsd config: %w", err)
	}
	return s, nil
}

// MdsdSyslogConfig returns the mdsd XML fragment routing syslog events. The
// document is assembled even when syslog collection is disabled: the
// downstream pipeline always expects the syslog source block, so a disabled
// policy yields the default route only.
func (g *Generator) MdsdSyslogConfig() (string, error) {
	if g.mdsdSyslogConf != nil {
		return *g.mdsdSyslogConf, nil
	}

	doc := newMdsdDoc()
	doc.addSource(mdsdSyslogSourceName)
	eventSource := doc.addEventSource(mdsdSyslogSourceName)
	doc.addRouteEvent(eventSource, ReservedSyslogTable, "")

	if g.syslogEvents != nil {
		for _, name := range splitSinkNames(g.syslogEvents.Sinks) {
			if name == ReservedSyslogTable {
				return "", fmt.Errorf("%w: %q can't be used as a sink name; it's reserved for the default syslog events table",
					ErrInvalidConfig, ReservedSyslogTable)
			}
			route, err := g.resolveSinkRoute(name)
			if err != nil {
				return "", err
			}
			doc.addSinkRoute(eventSource, route)
		}
	}

	conf, err := doc.String()
	if err != nil {
		return "", err
	}
	g.mdsdSyslogConf = &conf
	return conf, nil
}

// MdsdFileLogConfig returns the mdsd XML fragment routing tailed-file
// events, or "" when no files are configured. Files are processed in sorted
// path order so the output is reproducible.
func (g *Generator) MdsdFileLogConfig() (string, error) {
	if g.mdsdFileLogConf != nil {
		return *g.mdsdFileLogConf, nil
	}

	conf := ""
	if len(g.fileLogs) > 0 {
		generated, err := g.generateMdsdFileLogConfig()
		if err != nil {
			return "", err
		}
		conf = generated
	}

	g.mdsdFileLogConf = &conf
	return conf, nil
}

func (g *Generator) generateMdsdFileLogConfig() (string, error) {
	tables, sinks, files := g.fileLogMaps()

	doc := newMdsdDoc()
	seen := make(map[string]string)

	for _, file := range files {
		if tables[file] == "" && sinks[file] == "" {
			return "", fmt.Errorf("%w: neither table nor sinks defined for file %q", ErrInvalidConfig, file)
		}

		sourceName := mdsdFileLogSourcePrefix + strings.ReplaceAll(file, "/", ".")
		if prev, ok := seen[sourceName]; ok {
			return "", fmt.Errorf("%w: files %q and %q derive the same source name %q", ErrInvalidConfig, prev, file, sourceName)
		}
		seen[sourceName] = file

		doc.addSource(sourceName)
		eventSource := doc.addEventSource(sourceName)

		if tables[file] != "" {
			doc.addRouteEvent(eventSource, tables[file], "")
		}
		for _, name := range splitSinkNames(sinks[file]) {
			route, err := g.resolveSinkRoute(name)
			if err != nil {
				return "", err
			}
			doc.addSinkRoute(eventSource, route)
		}
	}

	return doc.String()
}

// fileLogMaps collapses the file-log entries into per-file table and sink
// maps (last entry wins for a repeated path) plus the sorted path list.
func (g *Generator) fileLogMaps() (tables, sinks map[string]string, files []string) {
	tables = make(map[string]string, len(g.fileLogs))
	sinks = make(map[string]string, len(g.fileLogs))
	for _, entry := range g.fileLogs {
		tables[entry.File] = entry.Table
		sinks[entry.File] = entry.Sinks
	}
	files = sortedKeys(tables)
	return tables, sinks, files
}
