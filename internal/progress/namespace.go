package progress

import "strconv"

// Namespace isolates one lesson's keys: <appID>_<lessonID>_.
type Namespace struct {
	Prefix string
}

func NewNamespace(appID, lessonID string) Namespace {
	return Namespace{Prefix: appID + "_" + lessonID + "_"}
}

func (n Namespace) StepKey(position int) string {
	return n.Prefix + "step_" + strconv.Itoa(position)
}

func (n Namespace) NotesKey() string {
	return n.Prefix + "notes"
}

func (n Namespace) ReactionKey(id string) string {
	return n.Prefix + "react_" + id
}
