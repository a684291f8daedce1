package main

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/yugabyte/cloud-resource-cleanup/model"
	svc "github.com/yugabyte/cloud-resource-cleanup/service"
	awsconfig "github.com/yugabyte/cloud-resource-cleanup/service/aws/config"
	awsec2 "github.com/yugabyte/cloud-resource-cleanup/service/aws/ec2"
	awssts "github.com/yugabyte/cloud-resource-cleanup/service/aws/sts"
	azurecompute "github.com/yugabyte/cloud-resource-cleanup/service/azure/compute"
	azureconfig "github.com/yugabyte/cloud-resource-cleanup/service/azure/config"
	azureidentity "github.com/yugabyte/cloud-resource-cleanup/service/azure/identity"
	"github.com/yugabyte/cloud-resource-cleanup/service/filter"
	"github.com/yugabyte/cloud-resource-cleanup/service/flag"
	gcpcompute "github.com/yugabyte/cloud-resource-cleanup/service/gcp/compute"
	gcpconfig "github.com/yugabyte/cloud-resource-cleanup/service/gcp/config"
	gcpidentity "github.com/yugabyte/cloud-resource-cleanup/service/gcp/identity"
	"github.com/yugabyte/cloud-resource-cleanup/service/notify"
	"github.com/yugabyte/cloud-resource-cleanup/service/orchestrator"
	"github.com/yugabyte/cloud-resource-cleanup/service/reporter"
	"github.com/yugabyte/cloud-resource-cleanup/utils"
)

type provider struct {
	resources svc.ResourceService
	identity  svc.IdentityService
}

func main() {
	// credentials for scheduled runs usually arrive through a .env file
	_ = godotenv.Load()

	var raw flag.RawFlags
	root := &cobra.Command{
		Use:           "cloud-resource-cleanup",
		Short:         "Delete or stop stale cloud resources matching tag, name and age filters",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), raw)
		},
	}

	flags := root.Flags()
	flags.StringVar(&raw.Cloud, "cloud", "", "cloud to clean up: aws, azure, gcp or all")
	flags.StringVar(&raw.ProjectID, "project_id", "", "GCP project ID (mandatory for gcp)")
	flags.StringVar(&raw.Resource, "resource", "", "resource kind: vm, disk, nic, ip, keypair or all")
	flags.StringVar(&raw.OperationType, "operation_type", "delete", "delete or stop (stop applies to VMs only)")
	flags.BoolVar(&raw.DryRun, "dry_run", false, "report what would happen without touching anything")
	flags.StringSliceVar(&raw.ResourceStates, "resource_states", nil, "VM states eligible for cleanup (default running)")
	flags.StringVar(&raw.FilterTags, "filter_tags", "", `JSON map of tags to include, e.g. '{"test_task": ["test"]}'`)
	flags.StringVar(&raw.ExceptionTags, "exception_tags", "", "JSON map of tags that exempt a resource")
	flags.StringVar(&raw.NoTags, "notags", "", "JSON map of tag groups; resources carrying every group are excluded")
	flags.StringVar(&raw.NameRegex, "name_regex", "", "JSON list of name patterns for untagged resources")
	flags.StringVar(&raw.ExceptionRegex, "exception_regex", "", "JSON list of name patterns that exempt a resource")
	flags.StringVar(&raw.Age, "age", "", `age threshold, e.g. '{"days": 3, "hours": 12}'`)
	flags.StringVar(&raw.DetachAge, "detach_age", "", "detach-time threshold for disks, same shape as --age")
	flags.StringVar(&raw.LogFile, "log_file", "", "append structured run logs to this file")
	flags.StringVar(&raw.SlackWebhook, "slack_webhook", "", "post run summaries to this webhook URL")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, raw flag.RawFlags) error {
	flags, err := flag.NewService().Parse(raw)
	if err != nil {
		return err
	}

	logger, logCloser, err := reporter.NewLogger(flags.LogFile)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	utils.DrawBanner()

	notifier := notify.NewService(flags.SlackWebhook)
	rep := reporter.NewService(logger, notifier)
	orch := orchestrator.NewService(filter.NewService())

	providers, err := buildProviders(ctx, flags, logger)
	if err != nil {
		return err
	}

	utils.StartSpinner()
	reports := runAll(ctx, providers, flags, orch, rep, logger)
	utils.StopSpinner()

	utils.DrawSummaryTable(reports, flags.DryRun)
	utils.DrawOutcomeChart(rep.Summary())
	return nil
}

// buildProviders constructs one resource service per requested cloud. A cloud
// whose credentials cannot be loaded fails the run up front rather than
// half-way through a multi-cloud pass.
func buildProviders(ctx context.Context, flags model.Flags, logger zerolog.Logger) ([]provider, error) {
	var providers []provider
	for _, cloud := range flags.Clouds {
		switch cloud {
		case "aws":
			cfgService := awsconfig.NewService()
			cfg, err := cfgService.GetAWSCfg(ctx, "us-east-1")
			if err != nil {
				return nil, fmt.Errorf("aws: %w", err)
			}
			providers = append(providers, provider{
				resources: awsec2.NewService(cfgService),
				identity:  awssts.NewService(cfg),
			})
		case "azure":
			cfgService, err := azureconfig.NewService()
			if err != nil {
				return nil, fmt.Errorf("azure: %w", err)
			}
			resources, err := azurecompute.NewService(cfgService)
			if err != nil {
				return nil, fmt.Errorf("azure: %w", err)
			}
			identity, err := azureidentity.NewService(cfgService.GetSubscriptionID(), cfgService.GetCredential())
			if err != nil {
				return nil, fmt.Errorf("azure: %w", err)
			}
			providers = append(providers, provider{resources: resources, identity: identity})
		case "gcp":
			if flags.ProjectID == "" {
				// only reachable with --cloud all
				logger.Warn().Msg("skipping gcp: --project_id not set")
				continue
			}
			cfgService := gcpconfig.NewService(flags.ProjectID)
			resources, err := gcpcompute.NewService(ctx, cfgService)
			if err != nil {
				return nil, fmt.Errorf("gcp: %w", err)
			}
			identity, err := gcpidentity.NewService(ctx, cfgService)
			if err != nil {
				return nil, fmt.Errorf("gcp: %w", err)
			}
			providers = append(providers, provider{resources: resources, identity: identity})
		}
	}
	return providers, nil
}

// runAll executes every provider/kind combination. Listing failures abort
// only the combination they hit; everything else keeps going.
func runAll(ctx context.Context, providers []provider, flags model.Flags, orch orchestrator.OrchestratorService, rep reporter.ReporterService, logger zerolog.Logger) []model.RunReport {
	var reports []model.RunReport
	for _, p := range providers {
		logAccount(ctx, p, logger)

		supported := p.resources.Kinds()
		for _, kind := range flags.Resources {
			if !slices.Contains(supported, kind) {
				continue
			}

			results, err := orch.Run(ctx, p.resources, kind, flags.Operation, flags.Spec, flags.DryRun)
			if err != nil {
				logger.Error().Err(err).
					Str("provider", p.resources.Provider()).
					Str("kind", string(kind)).
					Msg("listing failed")
				continue
			}

			report := model.RunReport{
				Provider:  p.resources.Provider(),
				Kind:      kind,
				Operation: flags.Operation,
				DryRun:    flags.DryRun,
				Results:   results,
			}
			rep.Report(ctx, report)
			reports = append(reports, report)
		}
	}
	return reports
}

func logAccount(ctx context.Context, p provider, logger zerolog.Logger) {
	if p.identity == nil {
		return
	}
	info, err := p.identity.GetAccountInfo(ctx)
	if err != nil {
		logger.Warn().Err(err).Str("provider", p.resources.Provider()).Msg("could not resolve account identity")
		return
	}
	logger.Info().
		Str("provider", info.Provider).
		Str("account", info.AccountID).
		Str("name", info.AccountName).
		Msg("cleaning account")
}
