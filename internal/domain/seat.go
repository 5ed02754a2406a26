package domain

type SeatID string

// Category is the kind of physical resource a seat belongs to. Each
// category can be enabled or disabled independently before pool building.
type Category string

const (
	CategoryOpen        Category = "open"
	CategoryWorkstation Category = "ws"
	CategoryPrivateRoom Category = "pr"
	CategoryQuietOffice Category = "quiet"
	CategoryClassroom   Category = "class"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryOpen, CategoryWorkstation, CategoryPrivateRoom, CategoryQuietOffice, CategoryClassroom:
		return true
	default:
		return false
	}
}

func (c Category) Label() string {
	switch c {
	case CategoryOpen:
		return "Open Seating"
	case CategoryWorkstation:
		return "Workstations"
	case CategoryPrivateRoom:
		return "Private Rooms"
	case CategoryQuietOffice:
		return "Quiet Offices"
	case CategoryClassroom:
		return "Classroom Seating"
	default:
		return string(c)
	}
}

// Categories lists every recognized category in catalogue order.
func Categories() []Category {
	return []Category{
		CategoryWorkstation,
		CategoryOpen,
		CategoryPrivateRoom,
		CategoryQuietOffice,
		CategoryClassroom,
	}
}

// Seat is a single physical resource. Seats are immutable once catalogued;
// pool building filters them without copying the catalogue.
type Seat struct {
	ID         SeatID
	Category   Category
	Number     int
	Adjustable bool
	Enabled    bool
	// Classroom groups classroom seats into rooms; zero for ungrouped seats.
	Classroom int
}
