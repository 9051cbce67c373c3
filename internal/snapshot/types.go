// Package snapshot captures and stores the pre-deployment state of org
// components so a deployment can be reversed later.
package snapshot

import (
	"time"

	"github.com/DevinBristol/salesforce-org-analysis/internal/component"
)

type Status string

const (
	StatusCreated Status = "created"
	StatusFailed  Status = "failed"
)

// ComponentRecord is the captured state of one component.
// PayloadFile and APIVersion are set exactly when HadExisting is true;
// a component with HadExisting=false was newly introduced by the
// deployment this snapshot precedes.
type ComponentRecord struct {
	Type        component.Type `json:"type"`
	Name        string         `json:"name"`
	HadExisting bool           `json:"hadExisting"`
	PayloadFile string         `json:"payloadFile,omitempty"`
	APIVersion  string         `json:"apiVersion,omitempty"`
}

// Snapshot is the manifest of one capture. Once Status reaches created
// it is never mutated; the retention manager may delete it wholesale.
type Snapshot struct {
	ID                string            `json:"id"`
	DeploymentID      string            `json:"deploymentId"`
	TargetEnvironment string            `json:"targetEnvironment"`
	CreatedAt         time.Time         `json:"createdAt"`
	Components        []ComponentRecord `json:"components"`
	Status            Status            `json:"status"`
	Error             string            `json:"error,omitempty"`
}

// Summary is a lightweight view for listing snapshots.
type Summary struct {
	ID                string    `json:"id"`
	DeploymentID      string    `json:"deploymentId"`
	TargetEnvironment string    `json:"targetEnvironment"`
	CreatedAt         time.Time `json:"createdAt"`
	ComponentCount    int       `json:"componentCount"`
}
