// Package common provides the types shared by the RPC client, the RPC server and
// the transports.
//
// Key Components:
//
//   - MethodID and Status: the method and reply status carried in every frame.
//
//   - Ack: the reply of a SendEmployees call, encoded as the acknowledgment
//     message of the loaded schema (see MarshalAck and UnmarshalAck).
//
//   - ServerConfig and ClientConfig: configuration of the server and the client,
//     including socket options and timeouts.
//
//   - Logger: a zap backed implementation of dragonboat's logger interface, so that
//     every package can obtain a named logger with logger.GetLogger.
//
//   - ErrTransport: the error every failed call is wrapped in.
package common
