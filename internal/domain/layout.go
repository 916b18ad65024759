package domain

// DragAxis identifies which pane divider is being dragged
type DragAxis string

const (
	DragNone       DragAxis = "NONE"
	DragHorizontal DragAxis = "HORIZONTAL"
	DragVertical   DragAxis = "VERTICAL"
)

// Ratio bounds for both dividers, in percent of the container
const (
	RatioMin     = 30.0
	RatioMax     = 80.0
	RatioDefault = 50.0
)

// LayoutState holds the two divider positions and the active drag, if any
type LayoutState struct {
	HorizontalRatio float64  `json:"horizontalRatio"`
	VerticalRatio   float64  `json:"verticalRatio"`
	DragAxis        DragAxis `json:"dragAxis"`
}

// NewLayoutState returns the default even split with no drag active
func NewLayoutState() LayoutState {
	return LayoutState{
		HorizontalRatio: RatioDefault,
		VerticalRatio:   RatioDefault,
		DragAxis:        DragNone,
	}
}

// Bounds is the pixel rectangle of the pane container at drag time
type Bounds struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Point is one pointer sample in the same coordinate space as Bounds
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
