package rpb

// Message codes of the protocol-buffers API. Each operation owns one
// request code and one response code; MsgErrorResp is the universal failure
// response and never identifies an operation.
const (
	MsgErrorResp byte = 0

	MsgPingReq  byte = 1
	MsgPingResp byte = 2

	MsgGetServerInfoReq  byte = 7
	MsgGetServerInfoResp byte = 8

	MsgGetReq  byte = 9
	MsgGetResp byte = 10

	MsgPutReq  byte = 11
	MsgPutResp byte = 12

	MsgDelReq  byte = 13
	MsgDelResp byte = 14

	MsgListBucketsReq  byte = 15
	MsgListBucketsResp byte = 16

	MsgListKeysReq  byte = 17
	MsgListKeysResp byte = 18

	MsgGetBucketReq  byte = 19
	MsgGetBucketResp byte = 20

	MsgSetBucketReq  byte = 21
	MsgSetBucketResp byte = 22

	MsgIndexReq  byte = 25
	MsgIndexResp byte = 26

	MsgResetBucketReq  byte = 29
	MsgResetBucketResp byte = 30

	// bucket-type property messages reuse the bucket property responses
	MsgGetBucketTypeReq byte = 31
	MsgSetBucketTypeReq byte = 32

	MsgGetBucketKeyPreflistReq  byte = 33
	MsgGetBucketKeyPreflistResp byte = 34

	MsgYokozunaIndexGetReq    byte = 54
	MsgYokozunaIndexGetResp   byte = 55
	MsgYokozunaIndexPutReq    byte = 56
	MsgYokozunaIndexDeleteReq byte = 57

	MsgYokozunaSchemaGetReq  byte = 58
	MsgYokozunaSchemaGetResp byte = 59
	MsgYokozunaSchemaPutReq  byte = 60
)
