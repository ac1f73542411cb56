// Package identity determines the machine's deployment guid from the guest
// agent's hosting environment config and persists it locally so a later run
// can detect redeployment.
package identity

import (
	"errors"
	"fmt"
	"os"

	"github.com/beevik/etree"
	"github.com/google/uuid"
)

const (
	DefaultHostingEnvPath = "/var/lib/waagent/HostingEnvironmentConfig.xml"
	DefaultStorePath      = "./machine_identity_FD76C85E-406F-4CFA-8EB0-CF18B123365C"
)

type MachineIdentity struct {
	// HostingEnvPath is the guest agent file carrying the Role guid.
	HostingEnvPath string
	// StorePath is the local file the identity is persisted to.
	StorePath string
}

func New() *MachineIdentity {
	return &MachineIdentity{
		HostingEnvPath: DefaultHostingEnvPath,
		StorePath:      DefaultStorePath,
	}
}

// CurrentIdentity returns the deployment guid from the hosting environment
// config in canonical form, or "" when the file does not exist.
func (m *MachineIdentity) CurrentIdentity() (string, error) {
	data, err := os.ReadFile(m.HostingEnvPath)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read hosting environment config: %w", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return "", fmt.Errorf("parse hosting environment config: %w", err)
	}

	role := doc.FindElement("//Role")
	if role == nil {
		return "", fmt.Errorf("no Role element in %s", m.HostingEnvPath)
	}
	guid := role.SelectAttrValue("guid", "")
	if guid == "" {
		return "", fmt.Errorf("Role element in %s has no guid attribute", m.HostingEnvPath)
	}

	// The attribute is machine generated ({...}-braced guid); anything
	// unparsable means a corrupt file.
	id, err := uuid.Parse(guid)
	if err != nil {
		return "", fmt.Errorf("malformed machine identity guid %q: %w", guid, err)
	}
	return id.String(), nil
}

// SaveIdentity persists the current identity to StorePath, overwriting any
// previous value. When no identity is available nothing is written and the
// store file is left absent.
func (m *MachineIdentity) SaveIdentity() error {
	id, err := m.CurrentIdentity()
	if err != nil {
		return err
	}
	if id == "" {
		return nil
	}

	if err := os.WriteFile(m.StorePath, []byte(id), 0644); err != nil {
		return fmt.Errorf("write machine identity: %w", err)
	}
	return nil
}

// StoredIdentity returns the previously persisted identity, or "" when none
// was ever written.
func (m *MachineIdentity) StoredIdentity() (string, error) {
	data, err := os.ReadFile(m.StorePath)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read stored machine identity: %w", err)
	}
	return string(data), nil
}
