// Package mdsd splices generated logging-config XML fragments into a full
// mdsd configuration tree.
package mdsd

import (
	"fmt"

	"github.com/beevik/etree"
)

// CopySubElements appends copies of the children of the element at path in
// src to the element at the same path in dst, preserving order. When the
// path is absent from src this is a no-op; when it is present in src but
// absent from dst the destination tree is not a valid merge target and an
// error is returned.
func CopySubElements(dst, src *etree.Document, path string) error {
	if src.Root() == nil {
		return nil
	}
	srcElem := src.Root().FindElement(path)
	if srcElem == nil {
		return nil
	}
	var dstElem *etree.Element
	if dst.Root() != nil {
		dstElem = dst.Root().FindElement(path)
	}
	if dstElem == nil {
		return fmt.Errorf("element %q not present in destination tree", path)
	}
	for _, child := range srcElem.ChildElements() {
		dstElem.AddChild(child.Copy())
	}
	return nil
}

// MergeLoggingConfig parses a generated logging config fragment and copies
// its Source, MdsdEventSource and EventStreamingAnnotation elements into the
// destination tree. An empty fragment is a no-op.
func MergeLoggingConfig(dst *etree.Document, fragment string) error {
	if fragment == "" {
		return nil
	}

	src := etree.NewDocument()
	if err := src.ReadFromString(fragment); err != nil {
		return fmt.Errorf("parse logging config fragment: %w", err)
	}
	if src.Root() == nil {
		return fmt.Errorf("logging config fragment has no root element")
	}

	for _, path := range []string{"Sources", "Events/MdsdEvents", "EventStreamingAnnotations"} {
		if err := CopySubElements(dst, src, path); err != nil {
			return err
		}
	}
	return nil
}
