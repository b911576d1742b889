package kube

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool    { return &v }

func TestMayRunAsRoot(t *testing.T) {
	tests := []struct {
		name        string
		podSC       *corev1.PodSecurityContext
		containerSC *corev1.SecurityContext
		want        bool
	}{
		{
			name: "no security context at all",
			want: true,
		},
		{
			name:        "container runAsUser 0",
			containerSC: &corev1.SecurityContext{RunAsUser: int64Ptr(0)},
			want:        true,
		},
		{
			name:        "container runAsNonRoot false",
			containerSC: &corev1.SecurityContext{RunAsNonRoot: boolPtr(false)},
			want:        true,
		},
		{
			name:        "container runAsNonRoot true",
			containerSC: &corev1.SecurityContext{RunAsNonRoot: boolPtr(true)},
			want:        false,
		},
		{
			name:        "container runAsUser 1000",
			containerSC: &corev1.SecurityContext{RunAsUser: int64Ptr(1000)},
			want:        false,
		},
		{
			name:        "empty container security context falls through to default",
			containerSC: &corev1.SecurityContext{},
			want:        true,
		},
		{
			name:  "pod runAsNonRoot true covers containers without overrides",
			podSC: &corev1.PodSecurityContext{RunAsNonRoot: boolPtr(true)},
			want:  false,
		},
		{
			name:  "pod runAsUser 1000 covers containers without overrides",
			podSC: &corev1.PodSecurityContext{RunAsUser: int64Ptr(1000)},
			want:  false,
		},
		{
			name:  "pod runAsUser 0",
			podSC: &corev1.PodSecurityContext{RunAsUser: int64Ptr(0)},
			want:  true,
		},
		{
			name:        "container runAsUser 0 overrides pod non-root",
			podSC:       &corev1.PodSecurityContext{RunAsNonRoot: boolPtr(true)},
			containerSC: &corev1.SecurityContext{RunAsUser: int64Ptr(0)},
			want:        true,
		},
		{
			name:        "container non-root overrides pod runAsUser 0",
			podSC:       &corev1.PodSecurityContext{RunAsUser: int64Ptr(0)},
			containerSC: &corev1.SecurityContext{RunAsUser: int64Ptr(1000)},
			want:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := MayRunAsRoot(tt.podSC, tt.containerSC)
			assert.Equal(t, tt.want, got)
			if tt.want {
				assert.NotEmpty(t, reason)
			} else {
				assert.Empty(t, reason)
			}
		})
	}
}

func testPod(namespace, name string, podSC *corev1.PodSecurityContext, containers ...corev1.Container) *corev1.Pod {
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Namespace: namespace, Name: name},
		Spec: corev1.PodSpec{
			SecurityContext: podSC,
			Containers:      containers,
		},
	}
}

func TestFindRootContainers_DefaultPostureFlagged(t *testing.T) {
	client := fake.NewSimpleClientset(
		testPod("default", "web", nil,
			corev1.Container{Name: "app"},
			corev1.Container{Name: "sidecar", SecurityContext: &corev1.SecurityContext{RunAsNonRoot: boolPtr(true)}},
		),
	)

	findings, err := FindRootContainers(context.Background(), client)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, "default", findings[0].Namespace)
	assert.Equal(t, "web", findings[0].PodName)
	assert.Equal(t, "app", findings[0].ContainerName)
	assert.Equal(t, "no non-root policy set", findings[0].Reason)
}

func TestFindRootContainers_OneRecordPerInsecureContainer(t *testing.T) {
	client := fake.NewSimpleClientset(
		testPod("payments", "worker", nil,
			corev1.Container{Name: "main", SecurityContext: &corev1.SecurityContext{RunAsUser: int64Ptr(0)}},
			corev1.Container{Name: "helper", SecurityContext: &corev1.SecurityContext{RunAsNonRoot: boolPtr(false)}},
		),
	)

	findings, err := FindRootContainers(context.Background(), client)
	require.NoError(t, err)
	require.Len(t, findings, 2)

	names := []string{findings[0].ContainerName, findings[1].ContainerName}
	assert.ElementsMatch(t, []string{"main", "helper"}, names)
}

func TestFindRootContainers_SecurePodYieldsNoRecords(t *testing.T) {
	client := fake.NewSimpleClientset(
		testPod("kube-system", "dns", &corev1.PodSecurityContext{RunAsNonRoot: boolPtr(true)},
			corev1.Container{Name: "coredns"},
		),
	)

	findings, err := FindRootContainers(context.Background(), client)
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestFindRootContainers_ScansAllNamespaces(t *testing.T) {
	client := fake.NewSimpleClientset(
		testPod("team-a", "a", nil, corev1.Container{Name: "c"}),
		testPod("team-b", "b", nil, corev1.Container{Name: "c"}),
	)

	findings, err := FindRootContainers(context.Background(), client)
	require.NoError(t, err)
	require.Len(t, findings, 2)

	namespaces := []string{findings[0].Namespace, findings[1].Namespace}
	assert.ElementsMatch(t, []string{"team-a", "team-b"}, namespaces)
}

func TestFindRootContainers_EmptyCluster(t *testing.T) {
	client := fake.NewSimpleClientset()

	findings, err := FindRootContainers(context.Background(), client)
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestFindRootContainers_Idempotent(t *testing.T) {
	client := fake.NewSimpleClientset(
		testPod("default", "web", nil, corev1.Container{Name: "app"}),
	)

	first, err := FindRootContainers(context.Background(), client)
	require.NoError(t, err)
	second, err := FindRootContainers(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
