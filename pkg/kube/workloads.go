package kube

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/cloudjanitor/janitor/internal/models"
)

// podListPageSize bounds a single pod list request; the scan follows the
// continue token until the API server reports no more pages.
const podListPageSize = 500

// FindRootContainers lists pods across all namespaces the credentials can
// see and returns one record per (pod, container) pair whose effective
// security context permits running as root. A malformed or missing
// security context on an individual pod is flagged conservatively and
// never aborts the scan.
func FindRootContainers(ctx context.Context, client kubernetes.Interface) ([]models.ContainerSecurityInfo, error) {
	var findings []models.ContainerSecurityInfo

	opts := metav1.ListOptions{Limit: podListPageSize}
	for {
		pods, err := client.CoreV1().Pods(metav1.NamespaceAll).List(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("listing pods: %w", err)
		}

		for _, pod := range pods.Items {
			findings = append(findings, evaluatePod(&pod)...)
		}

		if pods.Continue == "" {
			break
		}
		opts.Continue = pods.Continue
	}

	return findings, nil
}

// evaluatePod applies the root-execution predicate to every container in
// the pod and returns a record for each match.
func evaluatePod(pod *corev1.Pod) []models.ContainerSecurityInfo {
	var out []models.ContainerSecurityInfo

	for _, container := range pod.Spec.Containers {
		flagged, reason := MayRunAsRoot(pod.Spec.SecurityContext, container.SecurityContext)
		if !flagged {
			continue
		}

		logrus.WithFields(logrus.Fields{
			"namespace": pod.Namespace,
			"pod":       pod.Name,
			"container": container.Name,
			"reason":    reason,
		}).Debug("Container may run as root")

		out = append(out, models.ContainerSecurityInfo{
			Namespace:     pod.Namespace,
			PodName:       pod.Name,
			ContainerName: container.Name,
			RunAsUser:     effectiveRunAsUser(pod.Spec.SecurityContext, container.SecurityContext),
			RunAsNonRoot:  effectiveRunAsNonRoot(pod.Spec.SecurityContext, container.SecurityContext),
			Reason:        reason,
		})
	}

	return out
}

// MayRunAsRoot reports whether a container's effective security context
// permits root execution, and why. A container is flagged when it
// explicitly requests uid 0, when runAsNonRoot is explicitly false, or
// when neither the container nor the pod declares any non-root setting
// at all (the default posture may run as root). The absence of a
// security context is therefore treated as insecure, not as an error.
func MayRunAsRoot(podSC *corev1.PodSecurityContext, containerSC *corev1.SecurityContext) (bool, string) {
	if containerSC != nil {
		if containerSC.RunAsUser != nil && *containerSC.RunAsUser == 0 {
			return true, "container runAsUser=0"
		}
		if containerSC.RunAsNonRoot != nil && !*containerSC.RunAsNonRoot {
			return true, "container runAsNonRoot=false"
		}
		// Explicit non-root setting at container level wins.
		if containerSC.RunAsNonRoot != nil && *containerSC.RunAsNonRoot {
			return false, ""
		}
		if containerSC.RunAsUser != nil && *containerSC.RunAsUser > 0 {
			return false, ""
		}
	}

	if podSC != nil {
		if podSC.RunAsUser != nil && *podSC.RunAsUser == 0 {
			return true, "pod runAsUser=0"
		}
		if podSC.RunAsNonRoot != nil && !*podSC.RunAsNonRoot {
			return true, "pod runAsNonRoot=false"
		}
		if podSC.RunAsNonRoot != nil && *podSC.RunAsNonRoot {
			return false, ""
		}
		if podSC.RunAsUser != nil && *podSC.RunAsUser > 0 {
			return false, ""
		}
	}

	return true, "no non-root policy set"
}

func effectiveRunAsUser(podSC *corev1.PodSecurityContext, containerSC *corev1.SecurityContext) *int64 {
	if containerSC != nil && containerSC.RunAsUser != nil {
		return containerSC.RunAsUser
	}
	if podSC != nil {
		return podSC.RunAsUser
	}
	return nil
}

func effectiveRunAsNonRoot(podSC *corev1.PodSecurityContext, containerSC *corev1.SecurityContext) *bool {
	if containerSC != nil && containerSC.RunAsNonRoot != nil {
		return containerSC.RunAsNonRoot
	}
	if podSC != nil {
		return podSC.RunAsNonRoot
	}
	return nil
}
