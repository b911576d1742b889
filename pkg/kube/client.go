package kube

import (
	"fmt"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
	// Auth provider plugins (OIDC, exec) for managed clusters
	_ "k8s.io/client-go/plugin/pkg/client/auth"
)

// NewClient creates a Kubernetes clientset using the standard kubeconfig
// resolution chain (KUBECONFIG environment variable, then ~/.kube/config).
func NewClient() (*kubernetes.Clientset, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	overrides := &clientcmd.ConfigOverrides{}

	config, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, overrides).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("loading kubeconfig: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("creating clientset: %w", err)
	}

	return clientset, nil
}
