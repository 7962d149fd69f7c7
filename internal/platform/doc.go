// Package platform contains OS integration helpers: the Downloads directory,
// output folder resolution, free space checks, saved file lookup and
// revealing a file in the system file manager.
package platform
