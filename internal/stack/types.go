package stack

// Entry is one candidate path.
type Entry struct {
	ID       string `json:"id"`
	IsFolder bool   `json:"is_folder"`
}

// Stack is a group of at least two entries that are parts of one title.
type Stack struct {
	// Name is the anchor's title followed by its ignore field.
	Name string `json:"name"`
	// Expression is the naming expression that formed the stack.
	Expression    string   `json:"expression"`
	IsFolderStack bool     `json:"is_folder_stack"`
	Files         []string `json:"files"`
}

// Result lists stacks in discovery order. Unstacked holds the candidates
// that passed filtering but joined no stack, in sorted order.
type Result struct {
	Stacks    []Stack  `json:"stacks"`
	Unstacked []string `json:"unstacked"`
}
