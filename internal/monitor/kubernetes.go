package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"aiopsmon/internal/entities/snapshot"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	k8sclient "k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// kubeCollector queries the Kubernetes API for workloads in the monitored
// namespace and normalizes them into WorkloadRecords.
type kubeCollector struct {
	clientset   k8sclient.Interface
	project     string
	environment string
	initErr     error
}

func newKubeCollector(project, environment string) *kubeCollector {
	kc := &kubeCollector{project: project, environment: environment}
	kc.clientset, kc.initErr = newKubeClient()
	return kc
}

func (k *kubeCollector) Name() string { return "kubernetes" }

// newKubeClient prefers in-cluster config and falls back to KUBECONFIG or
// the default kubeconfig path for out-of-cluster runs.
func newKubeClient() (k8sclient.Interface, error) {
	config, err := rest.InClusterConfig()
	if err != nil {
		kubeconfig := os.Getenv("KUBECONFIG")
		if kubeconfig == "" {
			home, herr := os.UserHomeDir()
			if herr != nil {
				return nil, fmt.Errorf("no in-cluster config and no home dir: %w", err)
			}
			kubeconfig = filepath.Join(home, ".kube", "config")
		}
		config, err = clientcmd.BuildConfigFromFlags("", kubeconfig)
		if err != nil {
			return nil, fmt.Errorf("building kubeconfig: %w", err)
		}
	}
	return k8sclient.NewForConfig(config)
}

// resolveNamespace picks the namespace to monitor: the exact
// <project>-<environment> namespace first, then the first namespace with the
// project prefix, then the canonical default.
func (k *kubeCollector) resolveNamespace(ctx context.Context) string {
	exact := k.project + "-" + k.environment
	if _, err := k.clientset.CoreV1().Namespaces().Get(ctx, exact, metav1.GetOptions{}); err == nil {
		return exact
	}

	if list, err := k.clientset.CoreV1().Namespaces().List(ctx, metav1.ListOptions{}); err == nil {
		for _, ns := range list.Items {
			if strings.HasPrefix(ns.Name, k.project) {
				return ns.Name
			}
		}
	}
	return DefaultProject
}

// Collect populates snap.Resources with deployments, statefulsets, services
// and pods from the resolved namespace. Workloads that are not ready are a
// signal carried in the records, not an error.
func (k *kubeCollector) Collect(ctx context.Context, snap *snapshot.Snapshot) error {
	if k.initErr != nil {
		return fmt.Errorf("kubernetes client: %w", k.initErr)
	}

	ns := k.resolveNamespace(ctx)
	records := []snapshot.WorkloadRecord{}

	deployments, err := k.clientset.AppsV1().Deployments(ns).List(ctx, metav1.ListOptions{})
	if err != nil {
		return fmt.Errorf("listing deployments in %s: %w", ns, err)
	}
	for _, dep := range deployments.Items {
		desired := int32(1)
		if dep.Spec.Replicas != nil {
			desired = *dep.Spec.Replicas
		}
		records = append(records, snapshot.WorkloadRecord{
			Kind:            snapshot.KindDeployment,
			Name:            dep.Name,
			Namespace:       ns,
			DesiredReplicas: desired,
			ReadyReplicas:   dep.Status.ReadyReplicas,
			Ready:           dep.Status.ReadyReplicas >= desired,
		})
	}

	statefulsets, err := k.clientset.AppsV1().StatefulSets(ns).List(ctx, metav1.ListOptions{})
	if err != nil {
		slog.Warn("Listing statefulsets failed", "namespace", ns, "err", err)
	} else {
		for _, sts := range statefulsets.Items {
			desired := int32(1)
			if sts.Spec.Replicas != nil {
				desired = *sts.Spec.Replicas
			}
			records = append(records, snapshot.WorkloadRecord{
				Kind:            snapshot.KindStatefulSet,
				Name:            sts.Name,
				Namespace:       ns,
				DesiredReplicas: desired,
				ReadyReplicas:   sts.Status.ReadyReplicas,
				Ready:           sts.Status.ReadyReplicas >= desired,
			})
		}
	}

	services, err := k.clientset.CoreV1().Services(ns).List(ctx, metav1.ListOptions{})
	if err != nil {
		slog.Warn("Listing services failed", "namespace", ns, "err", err)
	} else {
		for _, svc := range services.Items {
			records = append(records, snapshot.WorkloadRecord{
				Kind:        snapshot.KindService,
				Name:        svc.Name,
				Namespace:   ns,
				Ready:       true,
				ServiceType: string(svc.Spec.Type),
				ClusterIP:   svc.Spec.ClusterIP,
			})
		}
	}

	pods, err := k.clientset.CoreV1().Pods(ns).List(ctx, metav1.ListOptions{})
	if err != nil {
		slog.Warn("Listing pods failed", "namespace", ns, "err", err)
	} else {
		for _, pod := range pods.Items {
			records = append(records, snapshot.WorkloadRecord{
				Kind:      snapshot.KindPod,
				Name:      pod.Name,
				Namespace: ns,
				Phase:     string(pod.Status.Phase),
				Ready:     podReady(&pod),
			})
		}
	}

	snap.Resources = records
	return nil
}

// podReady reports whether the pod is Running with a true Ready condition.
func podReady(pod *corev1.Pod) bool {
	if pod.Status.Phase != corev1.PodRunning {
		return false
	}
	for _, cond := range pod.Status.Conditions {
		if cond.Type == corev1.PodReady {
			return cond.Status == corev1.ConditionTrue
		}
	}
	return false
}
