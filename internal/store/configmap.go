package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
	k8sclient "k8s.io/client-go/kubernetes"

	"github.com/viewmodes/vmi/internal/document"
	"github.com/viewmodes/vmi/internal/kubernetes"
	"github.com/viewmodes/vmi/internal/output"
)

// ConfigMapDataKey is the ConfigMap data key holding the YAML body.
const ConfigMapDataKey = "config.yml"

// componentConfig is the LabelComponent value of config object ConfigMaps.
const componentConfig = "config"

// maxNameLength leaves room for the hash suffix within the 253-character
// DNS subdomain limit.
const maxNameLength = 240

// ConfigMapStore keeps one ConfigMap per config object in a namespace.
type ConfigMapStore struct {
	client    k8sclient.Interface
	namespace string
}

// NewConfigMapStore returns a store writing ConfigMaps into namespace.
func NewConfigMapStore(client k8sclient.Interface, namespace string) *ConfigMapStore {
	return &ConfigMapStore{client: client, namespace: namespace}
}

// ConfigMapName derives a DNS-1123 subdomain name from a config object
// name. Characters outside [a-z0-9.-] become '-', every dot-separated
// label is trimmed to start and end alphanumeric, empty labels are
// dropped, and a short hash of the original name keeps distinct names
// from colliding.
func ConfigMapName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}

	var labels []string
	for _, label := range strings.Split(b.String(), ".") {
		if label = strings.Trim(label, "-"); label != "" {
			labels = append(labels, label)
		}
	}
	base := strings.Join(labels, ".")
	if len(base) > maxNameLength {
		base = strings.TrimRight(base[:maxNameLength], ".-")
	}

	sum := sha256.Sum256([]byte(name))
	suffix := hex.EncodeToString(sum[:])[:8]
	if base == "" {
		return "vmi-" + suffix
	}
	return base + "-" + suffix
}

// Get implements Store.
func (s *ConfigMapStore) Get(ctx context.Context, name string) (*document.Value, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	cm, err := s.client.CoreV1().ConfigMaps(s.namespace).Get(ctx, ConfigMapName(name), metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return nil, kubernetes.ClassifyError(err, fmt.Sprintf("getting ConfigMap for %s", name))
	}

	return document.ParseNamed(name, []byte(cm.Data[ConfigMapDataKey]))
}

// Save implements Store. An existing ConfigMap is updated with its
// resourceVersion, so a concurrent writer causes a conflict error instead
// of a lost update.
func (s *ConfigMapStore) Save(ctx context.Context, name string, doc *document.Value) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	data, err := doc.Encode()
	if err != nil {
		return err
	}

	cmName := ConfigMapName(name)
	configMaps := s.client.CoreV1().ConfigMaps(s.namespace)

	desired := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{
			Name:      cmName,
			Namespace: s.namespace,
			Labels:    kubernetes.ManagedLabels(componentConfig),
			Annotations: map[string]string{
				kubernetes.AnnotationConfigName: name,
				kubernetes.AnnotationRevision:   uuid.NewString(),
			},
		},
		Data: map[string]string{ConfigMapDataKey: string(data)},
	}

	existing, err := configMaps.Get(ctx, cmName, metav1.GetOptions{})
	switch {
	case apierrors.IsNotFound(err):
		if _, err := configMaps.Create(ctx, desired, metav1.CreateOptions{}); err != nil {
			return kubernetes.ClassifyError(err, fmt.Sprintf("creating ConfigMap %q", cmName))
		}
		output.Debug("created ConfigMap", "name", cmName, "namespace", s.namespace, "config", name)
		return nil
	case err != nil:
		return kubernetes.ClassifyError(err, fmt.Sprintf("getting ConfigMap %q", cmName))
	}

	desired.ResourceVersion = existing.ResourceVersion
	if _, err := configMaps.Update(ctx, desired, metav1.UpdateOptions{}); err != nil {
		if apierrors.IsConflict(err) {
			return fmt.Errorf("ConfigMap %q was modified concurrently, retry the apply: %w", cmName, err)
		}
		return kubernetes.ClassifyError(err, fmt.Sprintf("updating ConfigMap %q", cmName))
	}
	output.Debug("updated ConfigMap", "name", cmName, "namespace", s.namespace, "config", name)
	return nil
}

// List implements Store.
func (s *ConfigMapStore) List(ctx context.Context, prefix string) ([]string, error) {
	selector := labels.SelectorFromSet(kubernetes.ManagedLabels(componentConfig)).String()
	list, err := s.client.CoreV1().ConfigMaps(s.namespace).List(ctx, metav1.ListOptions{LabelSelector: selector})
	if err != nil {
		return nil, kubernetes.ClassifyError(err, "listing ConfigMaps")
	}

	var names []string
	for _, cm := range list.Items {
		name := cm.Annotations[kubernetes.AnnotationConfigName]
		if name == "" || !strings.HasPrefix(name, prefix) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Delete implements Store.
func (s *ConfigMapStore) Delete(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	cmName := ConfigMapName(name)
	err := s.client.CoreV1().ConfigMaps(s.namespace).Delete(ctx, cmName, metav1.DeleteOptions{})
	if err != nil && !apierrors.IsNotFound(err) {
		return kubernetes.ClassifyError(err, fmt.Sprintf("deleting ConfigMap %q", cmName))
	}
	output.Debug("deleted ConfigMap", "name", cmName, "namespace", s.namespace)
	return nil
}
