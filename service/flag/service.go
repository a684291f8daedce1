package flag

import (
	"encoding/json"
	"regexp"
	"slices"
	"strings"

	"github.com/yugabyte/cloud-resource-cleanup/model"
)

func NewService() *service {
	return &service{}
}

// ageRequired records which kinds refuse to run without an age threshold.
// Absence of a threshold for these is a configuration error, not an implicit
// pass. IPs never age-filter; NICs are matched by name only.
var ageRequired = map[model.ResourceKind]bool{
	model.KindVM:      true,
	model.KindDisk:    true,
	model.KindKeypair: true,
}

// kindClouds restricts kinds that only one or two providers support.
var kindClouds = map[model.ResourceKind][]string{
	model.KindKeypair: {"aws"},
	model.KindNIC:     {"azure"},
	model.KindDisk:    {"azure", "gcp"},
}

// Parse decodes and validates the raw CLI input. Any error it returns wraps
// model.ErrConfiguration and aborts the run before provider calls are made.
func (s *service) Parse(raw RawFlags) (model.Flags, error) {
	var flags model.Flags

	switch raw.Cloud {
	case "aws", "azure", "gcp":
		flags.Clouds = []string{raw.Cloud}
	case "all":
		flags.Clouds = model.Clouds
	case "":
		return flags, model.ConfigError("--cloud is required")
	default:
		return flags, model.ConfigError("invalid cloud %q, supported: aws, azure, gcp, all", raw.Cloud)
	}

	switch raw.Resource {
	case "", "all":
		flags.Resources = model.ResourceKinds
	case "vm", "disk", "nic", "ip", "keypair":
		flags.Resources = []model.ResourceKind{model.ResourceKind(raw.Resource)}
	default:
		return flags, model.ConfigError("invalid resource %q, supported: vm, disk, nic, ip, keypair, all", raw.Resource)
	}

	switch raw.OperationType {
	case "", "delete":
		flags.Operation = model.OperationDelete
	case "stop":
		flags.Operation = model.OperationStop
	default:
		return flags, model.ConfigError("invalid operation_type %q, supported: delete, stop", raw.OperationType)
	}

	if flags.Operation == model.OperationStop && raw.Resource != "vm" {
		return flags, model.ConfigError("stop is supported only for the vm resource")
	}
	if (raw.Resource == "" || raw.Resource == "all") && raw.Cloud != "all" {
		return flags, model.ConfigError("all-resource cleanup is supported only with --cloud all")
	}
	if slices.Contains(flags.Clouds, "gcp") && raw.ProjectID == "" && raw.Cloud != "all" {
		return flags, model.ConfigError("--project_id is mandatory for gcp")
	}
	if len(flags.Clouds) == 1 {
		if supported, ok := kindClouds[flags.Resources[0]]; len(flags.Resources) == 1 && ok {
			if !slices.Contains(supported, flags.Clouds[0]) {
				return flags, model.ConfigError("resource %s is not supported on %s", flags.Resources[0], flags.Clouds[0])
			}
		}
	}

	flags.ProjectID = raw.ProjectID
	flags.DryRun = raw.DryRun
	flags.LogFile = raw.LogFile
	flags.SlackWebhook = raw.SlackWebhook

	spec, err := s.parseSpec(raw)
	if err != nil {
		return flags, err
	}
	flags.Spec = spec

	if flags.Operation == model.OperationDelete && spec.Age == nil {
		for _, kind := range flags.Resources {
			// When the user asked for "all", kinds that mandate an age are
			// still an error: an unbounded delete is never implicit.
			if ageRequired[kind] && !(kind == model.KindDisk && spec.DetachAge != nil) {
				return flags, model.ConfigError("--age is mandatory when deleting %s resources", kind)
			}
		}
	}

	return flags, nil
}

func (s *service) parseSpec(raw RawFlags) (model.FilterSpec, error) {
	var spec model.FilterSpec
	for _, state := range raw.ResourceStates {
		spec.ResourceStates = append(spec.ResourceStates, strings.ToLower(state))
	}

	for _, f := range []struct {
		name  string
		value string
		dst   *map[string][]string
	}{
		{"filter_tags", raw.FilterTags, &spec.FilterTags},
		{"exception_tags", raw.ExceptionTags, &spec.ExceptionTags},
		{"notags", raw.NoTags, &spec.NoTags},
	} {
		if f.value == "" {
			continue
		}
		if err := json.Unmarshal([]byte(f.value), f.dst); err != nil {
			return spec, model.ConfigError("--%s must be a JSON map of string to string list: %v", f.name, err)
		}
	}

	for _, f := range []struct {
		name  string
		value string
		dst   *[]string
	}{
		{"name_regex", raw.NameRegex, &spec.NameRegex},
		{"exception_regex", raw.ExceptionRegex, &spec.ExceptionRegex},
	} {
		if f.value == "" {
			continue
		}
		if err := json.Unmarshal([]byte(f.value), f.dst); err != nil {
			return spec, model.ConfigError("--%s must be a JSON list of patterns: %v", f.name, err)
		}
		for _, p := range *f.dst {
			if _, err := regexp.Compile(p); err != nil {
				return spec, model.ConfigError("--%s pattern %q: %v", f.name, p, err)
			}
		}
	}

	for _, f := range []struct {
		name  string
		value string
		dst   **model.Age
	}{
		{"age", raw.Age, &spec.Age},
		{"detach_age", raw.DetachAge, &spec.DetachAge},
	} {
		if f.value == "" {
			continue
		}
		var age model.Age
		if err := json.Unmarshal([]byte(f.value), &age); err != nil {
			return spec, model.ConfigError(`--%s must be JSON like {"days": 3, "hours": 12}: %v`, f.name, err)
		}
		if age.Days < 0 || age.Hours < 0 || age.Duration() == 0 {
			return spec, model.ConfigError("--%s must specify a positive threshold", f.name)
		}
		*f.dst = &age
	}

	return spec, nil
}
