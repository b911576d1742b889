package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cloudjanitor/janitor/internal/version"
	"github.com/cloudjanitor/janitor/pkg/aws"
	"github.com/cloudjanitor/janitor/pkg/formatter"
	"github.com/cloudjanitor/janitor/pkg/kube"
	"github.com/cloudjanitor/janitor/pkg/pricing"
	"github.com/cloudjanitor/janitor/pkg/utils"
)

const defaultSnapshotAgeDays = 90

var (
	showVersion bool

	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
)

// startScanSpinner creates and starts a spinner with a message for the given resource
func startScanSpinner(resource string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[9], 200*time.Millisecond)
	s.Suffix = fmt.Sprintf(" Scanning %s ...", resource)
	s.Start()
	return s
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "janitor",
		Short: "Read-only CLI to find unused or insecure cloud resources",
		Long: `janitor is a read-only auditing CLI that finds unattached EBS volumes,
aged EBS snapshots, and Kubernetes workloads that may run as root.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			if showVersion {
				info := version.Get()
				fmt.Printf("janitor version %s (built: %s, commit: %s, %s)\n",
					info.Version, info.BuildDate, info.GitCommit, info.GoVersion)
				return
			}
			cmd.Help()
		},
	}

	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version information")

	rootCmd.AddCommand(newFindUnusedEBSCmd())
	rootCmd.AddCommand(newFindOldSnapshotsCmd())
	rootCmd.AddCommand(newFindInsecureWorkloadsCmd())

	if err := rootCmd.Execute(); err != nil {
		red.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

// newFindUnusedEBSCmd builds the unattached volume finder command
func newFindUnusedEBSCmd() *cobra.Command {
	var region string

	cmd := &cobra.Command{
		Use:   "find-unused-ebs",
		Short: "Find unattached EBS volumes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !utils.IsValidRegion(region) {
				return fmt.Errorf("invalid region %q", region)
			}

			fmt.Printf("-> Searching for unattached EBS volumes in region: %s ...\n", region)
			scanStartTime := time.Now()

			client, err := aws.NewEBSClient(region)
			if err != nil {
				printAWSCredentialHint()
				return err
			}

			s := startScanSpinner("EBS volumes")
			volumes, err := client.GetUnattachedVolumes(context.Background())
			scanDuration := time.Since(scanStartTime)
			s.FinalMSG = fmt.Sprintf("✓ [%d volumes found] EBS volumes scanned - Completed in %.2f seconds\n",
				len(volumes), scanDuration.Seconds())
			s.Stop()

			if err != nil {
				printAWSCredentialHint()
				return err
			}

			if msg := pricing.GetInitMessage(); msg != "" {
				fmt.Println(msg)
			}

			if len(volumes) == 0 {
				green.Println("--> No unattached volumes found.")
				return nil
			}

			yellow.Printf("--> Found %d unattached volume(s):\n", len(volumes))
			formatter.PrintVolumesTable(os.Stdout, volumes)
			formatter.PrintVolumesSummary(os.Stdout, volumes)
			formatter.PrintPricingAPIStats(os.Stdout)
			return nil
		},
	}

	cmd.Flags().StringVar(&region, "region", utils.GetDefaultRegion(), "The AWS region to scan")
	return cmd
}

// newFindOldSnapshotsCmd builds the aged snapshot finder command
func newFindOldSnapshotsCmd() *cobra.Command {
	var region string
	var days int

	cmd := &cobra.Command{
		Use:   "find-old-snapshots",
		Short: "Find EBS snapshots older than a number of days",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !utils.IsValidRegion(region) {
				return fmt.Errorf("invalid region %q", region)
			}
			if days < 0 {
				return fmt.Errorf("--days must not be negative (got %d)", days)
			}

			fmt.Printf("-> Searching for snapshots older than %d days in region: %s ...\n", days, region)
			scanStartTime := time.Now()

			client, err := aws.NewSnapshotClient(region)
			if err != nil {
				printAWSCredentialHint()
				return err
			}

			s := startScanSpinner("EBS snapshots")
			snapshots, err := client.GetSnapshotsOlderThan(context.Background(), days)
			scanDuration := time.Since(scanStartTime)
			s.FinalMSG = fmt.Sprintf("✓ [%d snapshots found] EBS snapshots scanned - Completed in %.2f seconds\n",
				len(snapshots), scanDuration.Seconds())
			s.Stop()

			if err != nil {
				printAWSCredentialHint()
				return err
			}

			if msg := pricing.GetInitMessage(); msg != "" {
				fmt.Println(msg)
			}

			if len(snapshots) == 0 {
				green.Printf("--> No snapshots found older than %d days.\n", days)
				return nil
			}

			yellow.Printf("--> Found %d snapshot(s) older than %d days:\n", len(snapshots), days)
			formatter.PrintSnapshotsTable(os.Stdout, snapshots)
			formatter.PrintPricingAPIStats(os.Stdout)
			return nil
		},
	}

	cmd.Flags().StringVar(&region, "region", utils.GetDefaultRegion(), "The AWS region to scan")
	cmd.Flags().IntVar(&days, "days", defaultSnapshotAgeDays, "The age of snapshots in days to be considered old")
	return cmd
}

// newFindInsecureWorkloadsCmd builds the insecure workload finder command
func newFindInsecureWorkloadsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find-insecure-workloads",
		Short: "Find Kubernetes workloads that may run as root",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("-> Connecting to Kubernetes cluster ...")
			scanStartTime := time.Now()

			client, err := kube.NewClient()
			if err != nil {
				fmt.Println("Ensure a valid kubeconfig is available (e.g. ~/.kube/config or KUBECONFIG).")
				return err
			}

			s := startScanSpinner("pods in all namespaces")
			findings, err := kube.FindRootContainers(context.Background(), client)
			scanDuration := time.Since(scanStartTime)
			s.FinalMSG = fmt.Sprintf("✓ [%d containers found] Pods scanned - Completed in %.2f seconds\n",
				len(findings), scanDuration.Seconds())
			s.Stop()

			if err != nil {
				return err
			}

			if len(findings) == 0 {
				green.Println("--> No containers found that may run as root. Your cluster workloads look secure!")
				return nil
			}

			red.Printf("--> Found %d container(s) that may run as root:\n", len(findings))
			formatter.PrintWorkloadsTable(os.Stdout, findings)
			formatter.PrintWorkloadsSummary(os.Stdout, findings)
			return nil
		},
	}
}

func printAWSCredentialHint() {
	fmt.Println("Check your AWS credentials (environment variables, shared credentials file, or instance role).")
}
