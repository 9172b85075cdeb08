package entity

// TaskType identifies one of the supported classification tasks.
type TaskType string

const (
	// TaskAEPC distinguishes Adverse Events from Product Complaints.
	TaskAEPC TaskType = "ae-pc"
	// TaskAECategory assigns an Adverse Event to a category.
	TaskAECategory TaskType = "ae-category"
	// TaskPCCategory assigns a Product Complaint to a category.
	TaskPCCategory TaskType = "pc-category"
)

// AllTasks lists every registered task type in a stable order.
var AllTasks = []TaskType{TaskAEPC, TaskAECategory, TaskPCCategory}

var taskLabels = map[TaskType][]string{
	TaskAEPC: {
		"Adverse Event",
		"Product Complaint",
	},
	TaskAECategory: {
		"Gastrointestinal",
		"Cardiovascular",
		"Allergic Reaction",
		"Neurological/Psychiatric",
		"Injection Site Reaction",
		"Other",
	},
	TaskPCCategory: {
		"Device Defect",
		"Packaging Defect",
		"Storage and Shipping",
		"Labeling Issue",
		"Contamination",
		"Other",
	},
}

var taskDescriptions = map[TaskType]string{
	TaskAEPC:       "Classify a complaint as an Adverse Event or a Product Complaint",
	TaskAECategory: "Classify an Adverse Event complaint into a specific category",
	TaskPCCategory: "Classify a Product Complaint into a specific category",
}

// ParseTaskType validates a task identifier string against the
// registered enumeration.
func ParseTaskType(s string) (TaskType, bool) {
	t := TaskType(s)
	_, ok := taskLabels[t]
	return t, ok
}

// IsValid reports whether the task type is registered.
func (t TaskType) IsValid() bool {
	_, ok := taskLabels[t]
	return ok
}

// Labels returns the closed label set for the task.
func (t TaskType) Labels() []string {
	return taskLabels[t]
}

// Description returns a short human-readable task summary.
func (t TaskType) Description() string {
	return taskDescriptions[t]
}

// ArtifactFilename returns the conventional artifact file name for the
// task inside the artifact store directory.
func (t TaskType) ArtifactFilename() string {
	return string(t) + "_classifier_optimized.json"
}
