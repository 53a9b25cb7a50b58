package proctree

// Descendants returns nothing on windows: taskkill /T walks the tree itself.
func Descendants(pid int) ([]int, error) {
	return nil, nil
}
