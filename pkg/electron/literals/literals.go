package literals

// Capability names understood by the Electron dependency resolver.
const (
	// AT-SPI accessibility bus.
	ATSPI = "atspi"
	// Direct Rendering Manager.
	DRM = "drm"
	// Generic Buffer Management.
	GBM = "gbm"
	// GConf, for Electron < 3.
	GConf = "gconf"
	// `glib2`, which provides `gio trash`.
	Glib2 = "glib2"
	// GTK 2, for Electron < 2.
	GTK2 = "gtk2"
	// GTK 3.
	GTK3 = "gtk3"
	// GVFS client tools, which provide `gvfs-trash`.
	GVFS = "gvfs"
	// `kioclient` from the KDE CLI tools.
	KDECliTools = "kdeCliTools"
	// `kde-runtime`.
	KDERuntime = "kdeRuntime"
	// Desktop notifications.
	Notify = "notify"
	// Network Security Services.
	NSS = "nss"
	// `trash-cli`.
	TrashCli = "trashCli"
	// `libuuid`.
	UUID = "uuid"
	// XCB DRI3 extension.
	XcbDri3 = "xcbDri3"
	// `xdg-utils`.
	XdgUtils = "xdgUtils"
	// X11 screen saver extension.
	XSS = "xss"
	// X11 testing extension.
	XTST = "xtst"
)
