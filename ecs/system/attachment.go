package system

import (
	"github.com/milk9111/slash/common"
	"github.com/milk9111/slash/ecs"
	"github.com/milk9111/slash/ecs/component"
)

// Attach glues child to a named socket of parent. Attaching again moves the
// child to the new socket.
func Attach(w *ecs.World, child, parent ecs.Entity, socket string) error {
	if a, ok := ecs.Get(w, child, component.AttachmentComponent.Kind()); ok {
		a.Parent = ref(parent)
		a.Socket = socket
	} else if err := ecs.Add(w, child, component.AttachmentComponent.Kind(), &component.Attachment{Parent: ref(parent), Socket: socket}); err != nil {
		return err
	}
	syncAttachment(w, child)
	return nil
}

func Detach(w *ecs.World, child ecs.Entity) {
	ecs.Remove(w, child, component.AttachmentComponent.Kind())
}

// SocketLocation returns the world position of a socket on e. Unknown
// sockets resolve to the entity origin.
func SocketLocation(w *ecs.World, e ecs.Entity, socket string) (common.Vec3, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return common.Vec3{}, false
	}
	var offset common.Vec3
	if s, ok := ecs.Get(w, e, component.SocketsComponent.Kind()); ok && s.Offsets != nil {
		offset = s.Offsets[socket]
	}
	return t.Position.Add(rotateYaw(offset, t.Yaw)), true
}

// rotateYaw rotates a local offset (X forward, Y right, Z up) into world space.
func rotateYaw(v common.Vec3, yawDeg float64) common.Vec3 {
	f := common.Forward(yawDeg)
	right := common.V3(-f.Y, f.X, 0)
	return f.Scale(v.X).Add(right.Scale(v.Y)).Add(common.V3(0, 0, v.Z))
}

// SyncAttachments moves every attached entity onto its parent's socket.
func SyncAttachments(w *ecs.World) {
	ecs.ForEach(w, component.AttachmentComponent.Kind(), func(e ecs.Entity, _ *component.Attachment) {
		syncAttachment(w, e)
	})
}

func syncAttachment(w *ecs.World, e ecs.Entity) {
	a, ok := ecs.Get(w, e, component.AttachmentComponent.Kind())
	if !ok {
		return
	}
	parent := ent(a.Parent)
	if !ecs.IsAlive(w, parent) {
		return
	}
	at, ok := SocketLocation(w, parent, a.Socket)
	if !ok {
		return
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	t.Position = at
	if pt, ok := ecs.Get(w, parent, component.TransformComponent.Kind()); ok {
		t.Yaw = pt.Yaw
	}
}
