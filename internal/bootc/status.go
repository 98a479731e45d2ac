// Where: internal/bootc/status.go
// What: Types for `bootc status --json` output.
// Why: Model only the fields this tool reads; bootc reports much more.
package bootc

// ImageReference is the image block bootc reports for the spec and for
// deployment entries.
type ImageReference struct {
	Image     string `json:"image"`
	Transport string `json:"transport"`
}

// ImageStatus describes a deployed image with its resolved version.
type ImageStatus struct {
	Image   ImageReference `json:"image"`
	Version string         `json:"version"`
}

// Deployment is one deployment slot reported by bootc status.
type Deployment struct {
	Image  *ImageStatus `json:"image"`
	Pinned bool         `json:"pinned"`
}

// StatusSpec carries the desired image the host tracks.
type StatusSpec struct {
	Image *ImageReference `json:"image"`
}

// Deployments groups the booted, staged, and rollback slots.
type Deployments struct {
	Booted   *Deployment `json:"booted"`
	Staged   *Deployment `json:"staged"`
	Rollback *Deployment `json:"rollback"`
}

// Status models `bootc status --json`.
type Status struct {
	APIVersion string      `json:"apiVersion"`
	Spec       StatusSpec  `json:"spec"`
	Status     Deployments `json:"status"`
}
