package kubernetes

// Labels and annotations applied to ConfigMaps written by vmi.
const (
	LabelManagedBy      = "app.kubernetes.io/managed-by"
	LabelManagedByValue = "vmi"

	// LabelComponent categorizes vmi objects. Config objects use "config".
	LabelComponent = "viewmodes.dev/component"

	// AnnotationConfigName holds the unmangled config object name.
	AnnotationConfigName = "viewmodes.dev/config-name"

	// AnnotationRevision holds a random ID regenerated on every save.
	AnnotationRevision = "viewmodes.dev/revision"
)

// ManagedLabels returns the labels set on every vmi ConfigMap.
func ManagedLabels(component string) map[string]string {
	return map[string]string{
		LabelManagedBy: LabelManagedByValue,
		LabelComponent: component,
	}
}
