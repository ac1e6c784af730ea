package internal

// Version is the voxlate release version
const Version = "0.3.0"
