package chat

// PermissionGate caches the camera and media library answers fetched when
// the screen mounts. Until they arrive both read as not granted.
type PermissionGate struct {
	resolved     bool
	camera       bool
	mediaLibrary bool
}

// Resolved reports whether the mount-time fetch has completed
func (g PermissionGate) Resolved() bool { return g.resolved }

// CameraGranted reports whether the camera may be used
func (g PermissionGate) CameraGranted() bool { return g.resolved && g.camera }

// MediaLibraryGranted reports whether pictures may be saved
func (g PermissionGate) MediaLibraryGranted() bool { return g.resolved && g.mediaLibrary }

// resolve records the fetch result. Only the first answer counts.
func (g PermissionGate) resolve(ev PermissionsResolved) PermissionGate {
	if g.resolved {
		return g
	}
	return PermissionGate{resolved: true, camera: ev.Camera, mediaLibrary: ev.MediaLibrary}
}
