package models

// ContainerSecurityInfo represents a container that may run as the root user.
// One record is produced per (pod, container) pair that matches the predicate,
// so a pod with two insecure containers yields two records.
type ContainerSecurityInfo struct {
	Namespace     string
	PodName       string
	ContainerName string
	RunAsUser     *int64 // effective value, nil when unset at both levels
	RunAsNonRoot  *bool  // effective value, nil when unset at both levels
	Reason        string // why the container was flagged
}
