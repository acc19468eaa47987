package component

import "github.com/milk9111/slash/common"

const (
	SocketRightHand = "RightHandSocket"
	SocketSpine     = "SpineSocket"
)

// Attachment keeps an entity glued to a named socket of its parent.
type Attachment struct {
	Parent uint64
	Socket string
}

// Sockets maps socket names to offsets in the owner's local frame.
type Sockets struct {
	Offsets map[string]common.Vec3
}

var AttachmentComponent = NewComponent[Attachment]()

var SocketsComponent = NewComponent[Sockets]()
