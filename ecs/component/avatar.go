package component

// Avatar marks a user-controlled figure that trigger volumes react to.
type Avatar struct {
	Name   string
	Width  float64
	Height float64
}

var AvatarComponent = NewComponent[Avatar]()

// JoinRequest is a one-shot tag: the avatar system announces the avatar as
// joined on its next update and removes the tag.
type JoinRequest struct{}

var JoinRequestComponent = NewComponent[JoinRequest]()

// LeaveRequest is a one-shot tag: the avatar system announces the avatar as
// left and destroys it.
type LeaveRequest struct{}

var LeaveRequestComponent = NewComponent[LeaveRequest]()
