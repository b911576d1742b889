package formatter

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/cloudjanitor/janitor/internal/models"
)

// PrintWorkloadsTable prints a formatted table of containers that may run as root
func PrintWorkloadsTable(w io.Writer, findings []models.ContainerSecurityInfo) {
	if len(findings) == 0 {
		return
	}

	// Sort by namespace, pod, container for stable output
	sort.Slice(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Namespace != b.Namespace {
			return a.Namespace < b.Namespace
		}
		if a.PodName != b.PodName {
			return a.PodName < b.PodName
		}
		return a.ContainerName < b.ContainerName
	})

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	fmt.Fprintln(tw, "NAMESPACE\tPOD\tCONTAINER\tRUN AS USER\tRUN AS NON-ROOT\tREASON")

	for _, finding := range findings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			finding.Namespace,
			finding.PodName,
			finding.ContainerName,
			formatRunAsUser(finding.RunAsUser),
			formatRunAsNonRoot(finding.RunAsNonRoot),
			finding.Reason,
		)
	}

	tw.Flush()
}

// PrintWorkloadsSummary displays per namespace finding counts
func PrintWorkloadsSummary(w io.Writer, findings []models.ContainerSecurityInfo) {
	if len(findings) == 0 {
		return
	}

	counts := make(map[string]int)
	for _, finding := range findings {
		counts[finding.Namespace]++
	}

	namespaces := make([]string, 0, len(counts))
	for namespace := range counts {
		namespaces = append(namespaces, namespace)
	}
	sort.Strings(namespaces)

	fmt.Fprintln(w, "\n## Insecure Workloads Summary")

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "NAMESPACE\tCONTAINERS")
	for _, namespace := range namespaces {
		fmt.Fprintf(tw, "%s\t%d\n", namespace, counts[namespace])
	}
	tw.Flush()
}

func formatRunAsUser(uid *int64) string {
	if uid == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *uid)
}

func formatRunAsNonRoot(nonRoot *bool) string {
	if nonRoot == nil {
		return "-"
	}
	return fmt.Sprintf("%t", *nonRoot)
}
