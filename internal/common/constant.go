package common

// SessionCookieName is the default name of the cookie that carries the
// session token between the browser (or CLI) and the server.
const SessionCookieName = "token"
