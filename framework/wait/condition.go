package wait

// Condition is the state a wait polls for.
type Condition int

const (
	Visible Condition = iota
	Clickable
	Invisible
	Selected
)

func (c Condition) String() string {
	switch c {
	case Visible:
		return "visible"
	case Clickable:
		return "clickable"
	case Invisible:
		return "invisible"
	case Selected:
		return "selected"
	default:
		return "unknown condition"
	}
}

// Check evaluates the condition against a freshly resolved element.
func (c Condition) Check(e Element) (bool, error) {
	switch c {
	case Visible:
		return e.IsVisible()
	case Clickable:
		visible, err := e.IsVisible()
		if err != nil || !visible {
			return false, err
		}
		return e.IsEnabled()
	case Invisible:
		visible, err := e.IsVisible()
		return !visible, err
	case Selected:
		return e.IsSelected()
	default:
		return false, nil
	}
}

// satisfiedByAbsence is true for conditions that hold when the target does not exist at all.
func (c Condition) satisfiedByAbsence() bool {
	return c == Invisible
}
