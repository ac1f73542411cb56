package mdsd

import (
	"testing"

	"github.com/beevik/etree"
)

const mdsdTemplate = `<MonitoringManagement eventVersion="2" namespace="" timestamp="2014-12-01T20:00:00.000" version="1.0">
  <Sources>
    <Source name="builtin" dynamic_schema="true" />
  </Sources>
  <Events>
    <MdsdEvents>
    </MdsdEvents>
  </Events>
  <EventStreamingAnnotations>
  </EventStreamingAnnotations>
</MonitoringManagement>`

const loggingFragment = `<MonitoringManagement eventVersion="2" namespace="" timestamp="2014-12-01T20:00:00.000" version="1.0">
  <Sources>
    <Source name="mdsd.syslog" dynamic_schema="true" />
  </Sources>
  <Events>
    <MdsdEvents>
      <MdsdEventSource source="mdsd.syslog">
        <RouteEvent dontUsePerNDayTable="true" eventName="LinuxSyslog" priority="High" />
      </MdsdEventSource>
    </MdsdEvents>
  </Events>
  <EventStreamingAnnotations>
    <EventStreamingAnnotation name="MyEH">
      <EventPublisher>
        <Content/>
        <Key><![CDATA[https://myeh.example.net/pub?sig=abc]]></Key>
      </EventPublisher>
    </EventStreamingAnnotation>
  </EventStreamingAnnotations>
</MonitoringManagement>`

func loadDoc(t *testing.T, s string) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	if err := doc.ReadFromString(s); err != nil {
		t.Fatalf("parse XML: %v", err)
	}
	return doc
}

func countElements(doc *etree.Document, path string) int {
	return len(doc.Root().FindElements(path))
}

func TestMergeLoggingConfig(t *testing.T) {
	dst := loadDoc(t, mdsdTemplate)

	if err := MergeLoggingConfig(dst, loggingFragment); err != nil {
		t.Fatalf("MergeLoggingConfig failed: %v", err)
	}

	if got := countElements(dst, "Sources/Source"); got != 2 {
		t.Fatalf("expected 2 sources after merge, got %d", got)
	}
	if got := countElements(dst, "Events/MdsdEvents/MdsdEventSource"); got != 1 {
		t.Fatalf("expected 1 event source after merge, got %d", got)
	}
	if got := countElements(dst, "EventStreamingAnnotations/EventStreamingAnnotation"); got != 1 {
		t.Fatalf("expected 1 annotation after merge, got %d", got)
	}

	// Order preserved: the template's own source stays first.
	sources := dst.Root().FindElements("Sources/Source")
	if sources[0].SelectAttrValue("name", "") != "builtin" {
		t.Fatal("template source should precede merged sources")
	}
	if sources[1].SelectAttrValue("name", "") != "mdsd.syslog" {
		t.Fatal("merged source missing or out of order")
	}

	key := dst.Root().FindElement("EventStreamingAnnotations/EventStreamingAnnotation/EventPublisher/Key")
	if key == nil || key.Text() != "https://myeh.example.net/pub?sig=abc" {
		t.Fatalf("annotation Key not carried over: %v", key)
	}
}

func TestMergeLoggingConfigEmptyFragment(t *testing.T) {
	dst := loadDoc(t, mdsdTemplate)

	if err := MergeLoggingConfig(dst, ""); err != nil {
		t.Fatalf("MergeLoggingConfig failed on empty fragment: %v", err)
	}
	if got := countElements(dst, "Sources/Source"); got != 1 {
		t.Fatalf("empty fragment should not change the tree, got %d sources", got)
	}
}

func TestMergeLoggingConfigMalformedFragment(t *testing.T) {
	dst := loadDoc(t, mdsdTemplate)

	if err := MergeLoggingConfig(dst, "<MonitoringManagement><unclosed>"); err == nil {
		t.Fatal("MergeLoggingConfig should fail on malformed XML")
	}
}

func TestCopySubElementsPathAbsentInSource(t *testing.T) {
	dst := loadDoc(t, mdsdTemplate)
	src := loadDoc(t, `<MonitoringManagement><Sources/></MonitoringManagement>`)

	before := countElements(dst, "EventStreamingAnnotations/EventStreamingAnnotation")
	if err := CopySubElements(dst, src, "EventStreamingAnnotations"); err != nil {
		t.Fatalf("CopySubElements failed: %v", err)
	}
	after := countElements(dst, "EventStreamingAnnotations/EventStreamingAnnotation")
	if before != after {
		t.Fatalf("no-op expected, element count changed: %d -> %d", before, after)
	}
}

func TestCopySubElementsPathAbsentInDestination(t *testing.T) {
	dst := loadDoc(t, `<MonitoringManagement><Sources/></MonitoringManagement>`)
	src := loadDoc(t, loggingFragment)

	if err := CopySubElements(dst, src, "EventStreamingAnnotations"); err == nil {
		t.Fatal("CopySubElements should fail when the destination lacks the path")
	}
}
