// Package credentials resolves API keys from a prioritized list of sources:
// a hosted-style secrets file, the process environment, a local .env file and
// finally the voxlate config file.
package credentials
