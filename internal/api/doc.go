// Package api is the sample client API served under /api/[{version}/]. It
// translates HTTP requests into calls on the auth service and the code
// registry, and hands every result, success or failure, to the renderer.
package api
