package monitor

import (
	"context"
	"testing"

	"aiopsmon/internal/entities/snapshot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func int32Ptr(v int32) *int32 { return &v }

func namespaceObj(name string) *corev1.Namespace {
	return &corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: name}}
}

func TestResolveNamespace(t *testing.T) {
	tests := []struct {
		name       string
		namespaces []string
		want       string
	}{
		{"exact match wins", []string{"default", "aiops-development", "aiops-staging"}, "aiops-development"},
		{"prefix fallback", []string{"default", "aiops-prod"}, "aiops-prod"},
		{"canonical default", []string{"default", "kube-system"}, "aiops"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clientset := fake.NewSimpleClientset()
			for _, ns := range tt.namespaces {
				_, err := clientset.CoreV1().Namespaces().Create(context.Background(), namespaceObj(ns), metav1.CreateOptions{})
				require.NoError(t, err)
			}

			kc := &kubeCollector{clientset: clientset, project: "aiops", environment: "development"}
			assert.Equal(t, tt.want, kc.resolveNamespace(context.Background()))
		})
	}
}

func TestKubeCollect(t *testing.T) {
	ns := "aiops-development"
	clientset := fake.NewSimpleClientset(
		namespaceObj(ns),
		&appsv1.Deployment{
			ObjectMeta: metav1.ObjectMeta{Name: "api", Namespace: ns},
			Spec:       appsv1.DeploymentSpec{Replicas: int32Ptr(3)},
			Status:     appsv1.DeploymentStatus{ReadyReplicas: 3},
		},
		&appsv1.Deployment{
			ObjectMeta: metav1.ObjectMeta{Name: "gateway", Namespace: ns},
			Spec:       appsv1.DeploymentSpec{Replicas: int32Ptr(2)},
			Status:     appsv1.DeploymentStatus{ReadyReplicas: 1},
		},
		&appsv1.StatefulSet{
			ObjectMeta: metav1.ObjectMeta{Name: "postgres", Namespace: ns},
			Spec:       appsv1.StatefulSetSpec{Replicas: int32Ptr(1)},
			Status:     appsv1.StatefulSetStatus{ReadyReplicas: 1},
		},
		&corev1.Service{
			ObjectMeta: metav1.ObjectMeta{Name: "api", Namespace: ns},
			Spec:       corev1.ServiceSpec{Type: corev1.ServiceTypeClusterIP, ClusterIP: "10.0.0.10"},
		},
		&corev1.Pod{
			ObjectMeta: metav1.ObjectMeta{Name: "api-1", Namespace: ns},
			Status: corev1.PodStatus{
				Phase: corev1.PodRunning,
				Conditions: []corev1.PodCondition{
					{Type: corev1.PodReady, Status: corev1.ConditionTrue},
				},
			},
		},
		&corev1.Pod{
			ObjectMeta: metav1.ObjectMeta{Name: "api-2", Namespace: ns},
			Status:     corev1.PodStatus{Phase: corev1.PodPending},
		},
	)

	kc := &kubeCollector{clientset: clientset, project: "aiops", environment: "development"}
	snap := emptySnapshot()
	require.NoError(t, kc.Collect(context.Background(), snap))

	byKind := map[snapshot.WorkloadKind][]snapshot.WorkloadRecord{}
	for _, w := range snap.Resources {
		byKind[w.Kind] = append(byKind[w.Kind], w)
		assert.Equal(t, ns, w.Namespace)
	}

	require.Len(t, byKind[snapshot.KindDeployment], 2)
	for _, dep := range byKind[snapshot.KindDeployment] {
		switch dep.Name {
		case "api":
			assert.True(t, dep.Ready)
			assert.EqualValues(t, 3, dep.ReadyReplicas)
		case "gateway":
			assert.False(t, dep.Ready, "1/2 replicas is not ready")
		}
	}

	require.Len(t, byKind[snapshot.KindStatefulSet], 1)
	assert.True(t, byKind[snapshot.KindStatefulSet][0].Ready)

	require.Len(t, byKind[snapshot.KindService], 1)
	assert.Equal(t, "10.0.0.10", byKind[snapshot.KindService][0].ClusterIP)
	assert.True(t, byKind[snapshot.KindService][0].Ready)

	require.Len(t, byKind[snapshot.KindPod], 2)
	for _, pod := range byKind[snapshot.KindPod] {
		switch pod.Name {
		case "api-1":
			assert.True(t, pod.Ready)
			assert.Equal(t, "Running", pod.Phase)
		case "api-2":
			assert.False(t, pod.Ready)
			assert.Equal(t, "Pending", pod.Phase)
		}
	}
}

func TestKubeCollectClientUnavailable(t *testing.T) {
	kc := &kubeCollector{initErr: assert.AnError, project: "aiops", environment: "development"}
	snap := emptySnapshot()
	err := kc.Collect(context.Background(), snap)
	require.Error(t, err)
	assert.Empty(t, snap.Resources)
}
