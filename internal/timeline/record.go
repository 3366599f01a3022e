package timeline

import "time"

// Record 是聚合逻辑消费的扁平化日志视图
// 字段名称均已由存储层通过外键解析为展示字符串，可为空
// CreatedAt 为毫秒时间戳，是唯一的排序与分桶依据
type Record struct {
	ID           string
	HabitName    string
	CategoryName string
	CueName      string
	LocationName string
	Intensity    *int
	Count        int
	DidResist    bool
	CreatedAt    int64
	Notes        string
}

// OccurredAt 把毫秒时间戳换算到指定时区
func (r Record) OccurredAt(loc *time.Location) time.Time {
	return time.UnixMilli(r.CreatedAt).In(loc)
}

// Bucketable 判断记录是否具备可分桶的时间戳
// 非法时间戳的记录会被聚合逻辑直接跳过，而不是污染统计结果
func (r Record) Bucketable() bool {
	return r.CreatedAt > 0
}

// Predicate 描述一条记录是否参与某项统计
type Predicate func(Record) bool

// GaveIn 表示没忍住（didResist 为假）的记录
func GaveIn(r Record) bool {
	return !r.DidResist
}

// Resisted 表示成功抵抗的记录
func Resisted(r Record) bool {
	return r.DidResist
}

// FieldSelector 从记录中取出参与频次排名的字段值
type FieldSelector func(Record) string

// CueField 选取诱因名称
func CueField(r Record) string { return r.CueName }

// LocationField 选取地点名称
func LocationField(r Record) string { return r.LocationName }

// HabitField 选取习惯名称
func HabitField(r Record) string { return r.HabitName }
