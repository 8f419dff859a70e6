// Package platform resolves host platform facts consumed by build commands.
package platform

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/osforge/osforge/internal/execshell"
)

const (
	unameMachineFlagConstant             = "-m"
	basearchProbeTemplateConstant        = "unable to detect base architecture: %w"
	basearchEmptyMessageConstant         = "architecture probe produced no output"
	executorNotConfiguredMessageConstant = "architecture resolver requires an executor"
)

var basearchNormalizationMapping = map[string]string{
	"amd64": "x86_64",
	"arm64": "aarch64",
	"arm":   "armhfp",
	"386":   "i386",
}

// ArchitectureResolver resolves the machine base architecture exactly once
// per process. Construct it at startup and pass it to the call sites that
// need the value.
type ArchitectureResolver struct {
	executor     *execshell.ShellExecutor
	resolveOnce  sync.Once
	resolvedArch string
	resolveError error
}

// NewArchitectureResolver constructs a resolver backed by the supplied
// executor.
func NewArchitectureResolver(executor *execshell.ShellExecutor) (*ArchitectureResolver, error) {
	if executor == nil {
		return nil, errors.New(executorNotConfiguredMessageConstant)
	}
	return &ArchitectureResolver{executor: executor}, nil
}

// Basearch returns the canonical base architecture family of the host,
// probing the platform on first use and returning the memoized value on
// every subsequent call. The value cannot change within a process lifetime.
func (resolver *ArchitectureResolver) Basearch(executionContext context.Context) (string, error) {
	resolver.resolveOnce.Do(func() {
		resolver.resolvedArch, resolver.resolveError = resolver.probeBasearch(executionContext)
	})
	return resolver.resolvedArch, resolver.resolveError
}

func (resolver *ArchitectureResolver) probeBasearch(executionContext context.Context) (string, error) {
	probeDetails := execshell.CommandDetails{
		Arguments:           []string{unameMachineFlagConstant},
		CaptureOutput:       true,
		SuppressCommandEcho: true,
	}
	probeResult, probeError := resolver.executor.ExecuteUname(executionContext, probeDetails)
	if probeError != nil {
		return "", fmt.Errorf(basearchProbeTemplateConstant, probeError)
	}

	reportedArchitecture := strings.TrimSpace(probeResult.StandardOutput)
	if len(reportedArchitecture) == 0 {
		return "", errors.New(basearchEmptyMessageConstant)
	}

	if canonicalArchitecture, mappingExists := basearchNormalizationMapping[reportedArchitecture]; mappingExists {
		return canonicalArchitecture, nil
	}
	return reportedArchitecture, nil
}
