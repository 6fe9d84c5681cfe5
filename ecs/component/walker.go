package component

// Walker drives an avatar's transform from a tengo script.
type Walker struct {
	Script string
	Speed  float64
	Radius float64
	Phase  float64
	HomeX  float64
	HomeY  float64
	// Time is the script clock in seconds.
	Time float64
}

var WalkerComponent = NewComponent[Walker]()
