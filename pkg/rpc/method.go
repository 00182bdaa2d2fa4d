package rpc

// Method names understood by the server.
const (
	MethodUsers    = "users"
	MethodPosts    = "posts"
	MethodComments = "comments"
	MethodMe       = "me"
	MethodPost     = "post"

	MethodCreateUser    = "createUser"
	MethodUpdateUser    = "updateUser"
	MethodDeleteUser    = "deleteUser"
	MethodCreatePost    = "createPost"
	MethodUpdatePost    = "updatePost"
	MethodDeletePost    = "deletePost"
	MethodCreateComment = "createComment"
	MethodUpdateComment = "updateComment"
	MethodDeleteComment = "deleteComment"

	MethodPostAuthor    = "postAuthor"
	MethodPostComments  = "postComments"
	MethodCommentAuthor = "commentAuthor"
	MethodCommentPost   = "commentPost"
	MethodUserPosts     = "userPosts"
	MethodUserComments  = "userComments"

	// Live and Kill only work on WebSocket connections.
	MethodLive = "live"
	MethodKill = "kill"
)

// Live query topics accepted by the live method.
const (
	LivePost    = "post"
	LiveComment = "comment"
	LiveCount   = "count"
)
