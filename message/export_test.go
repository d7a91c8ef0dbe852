package message

var RandomToken = randomToken
