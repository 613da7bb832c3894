// Package kubernetes provides the Kubernetes client used by the ConfigMap
// configuration store.
package kubernetes

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	oerrors "github.com/viewmodes/vmi/internal/errors"
	"github.com/viewmodes/vmi/internal/version"
)

// EnvKubeconfig overrides KUBECONFIG for vmi only.
const EnvKubeconfig = "VMI_KUBECONFIG"

// requestTimeout bounds each API call made by the store.
const requestTimeout = 30 * time.Second

// ClientOptions selects the cluster and context.
type ClientOptions struct {
	// Kubeconfig is an explicit kubeconfig path. When empty, VMI_KUBECONFIG
	// is consulted, then the client-go defaults (KUBECONFIG, ~/.kube/config).
	Kubeconfig string

	// Context overrides the kubeconfig current-context.
	Context string
}

// Client holds a clientset and the namespace of the selected context.
type Client struct {
	Clientset kubernetes.Interface

	// DefaultNamespace is the context namespace, or "default".
	DefaultNamespace string
}

// NewClient builds a client from kubeconfig. Failures to load or parse
// the kubeconfig are connectivity errors.
func NewClient(opts ClientOptions) (*Client, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	rules.ExplicitPath = resolveKubeconfig(opts.Kubeconfig)

	overrides := &clientcmd.ConfigOverrides{CurrentContext: opts.Context}
	loader := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, overrides)

	restConfig, err := loader.ClientConfig()
	if err != nil {
		return nil, connectivityError("loading kubeconfig", err, opts)
	}
	restConfig.Timeout = requestTimeout
	restConfig.UserAgent = userAgent()

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, connectivityError("creating clientset", err, opts)
	}

	namespace, _, err := loader.Namespace()
	if err != nil || namespace == "" {
		namespace = "default"
	}

	return &Client{Clientset: clientset, DefaultNamespace: namespace}, nil
}

func connectivityError(action string, err error, opts ClientOptions) error {
	ctx := map[string]string{}
	if opts.Kubeconfig != "" {
		ctx["Kubeconfig"] = opts.Kubeconfig
	}
	if opts.Context != "" {
		ctx["Context"] = opts.Context
	}
	return oerrors.NewConnectivityError(action+": "+err.Error(), ctx,
		"check --kubeconfig and --context, or use --store file")
}

func userAgent() string {
	return "vmi/" + strings.TrimPrefix(version.Version, "v") + " " + rest.DefaultKubernetesUserAgent()
}

// resolveKubeconfig returns the explicit kubeconfig path, if any:
// the flag, then VMI_KUBECONFIG. An empty result leaves the choice to
// client-go (KUBECONFIG, then ~/.kube/config).
func resolveKubeconfig(flagValue string) string {
	if flagValue != "" {
		return expandTilde(flagValue)
	}
	return expandTilde(os.Getenv(EnvKubeconfig))
}

// expandTilde expands a leading ~ or ~/. ~user forms are left alone.
func expandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
