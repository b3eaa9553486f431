package model

// RelationInfo 观察者视角下的关系视图
type RelationInfo struct {
	IsSent     bool `json:"is_sent"`     // 观察者已发出请求，待接受
	IsReceived bool `json:"is_received"` // 观察者收到请求，待接受
	IsFriend   bool `json:"is_friend"`   // 双方已互为好友
	CanSend    bool `json:"can_send"`    // 不存在任何记录，观察者可以发起
	IsSelf     bool `json:"is_self"`     // 观察者就是被查看的人
}

// IsSent 该记录是否表示 userID 发出且未被接受的请求
func (f *Follower) IsSent(userID uint64) bool {
	return f.FollowerUserID == userID && f.Status == StatusPending
}

// IsReceived 该记录是否表示 userID 收到且未接受的请求
func (f *Follower) IsReceived(userID uint64) bool {
	return f.FollowedUserID == userID && f.Status == StatusPending
}

// IsAccepted 该记录是否表示 userID 参与的已接受关系
func (f *Follower) IsAccepted(userID uint64) bool {
	return (f.FollowerUserID == userID || f.FollowedUserID == userID) &&
		f.Status == StatusAccepted
}

// Resolve 由单条有向存储边推导观察者视角的关系视图。纯函数，全定义域无错误：
// f 为 nil 视为无任何关系；与观察者无关的记录同样视为无关系（调用方保证只传
// 相关于 {viewerID, subjectID} 的那条记录）。
func Resolve(f *Follower, viewerID, subjectID uint64) RelationInfo {
	info := RelationInfo{IsSelf: viewerID == subjectID}
	if f == nil {
		info.CanSend = true
		return info
	}
	info.IsSent = f.IsSent(viewerID)
	info.IsReceived = f.IsReceived(viewerID)
	info.IsFriend = f.IsAccepted(viewerID)
	// 观察者不是记录的参与方时，等同于没有关系
	if !info.IsSent && !info.IsReceived && !info.IsFriend {
		info.CanSend = true
	}
	return info
}
