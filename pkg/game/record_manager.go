package game

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// MaxRecords 保留的最高分记录条数
const MaxRecords = 10

// ScoreRecord 一局游戏的结算记录
type ScoreRecord struct {
	ID        string    `yaml:"id"`        // 局 ID（UUID）
	Score     int       `yaml:"score"`     // 最终分数
	Stage     string    `yaml:"stage"`     // 结束时所在关卡
	Cleared   bool      `yaml:"cleared"`   // 是否通关
	CreatedAt time.Time `yaml:"createdAt"` // 记录时间
}

// RecordData 持久化的记录数据
type RecordData struct {
	Records       []ScoreRecord `yaml:"records"`       // 按分数降序
	ClearedStages []string      `yaml:"clearedStages"` // 已通关的关卡
}

// RecordManager 记录管理器
//
// 职责：
//   - 加载和保存最高分记录
//   - 记录已通关的关卡
//
// 数据通过 gdata 以 YAML 格式持久化，gdataManager 为 nil 时只保存在内存中。
type RecordManager struct {
	gdataManager *gdata.Manager
	data         *RecordData
}

const (
	recordsObject   = "records"
	recordsProperty = "scores"
)

// NewRecordManager 创建记录管理器
//
// 参数：
//   - gdataManager: gdata 存储，可为 nil（降级模式）
//
// 返回：
//   - *RecordManager: 记录管理器实例（始终非 nil）
//   - error: 已有数据损坏时返回错误，此时使用空记录
func NewRecordManager(gdataManager *gdata.Manager) (*RecordManager, error) {
	rm := &RecordManager{
		gdataManager: gdataManager,
		data:         &RecordData{},
	}
	if err := rm.Load(); err != nil {
		return rm, err
	}
	return rm, nil
}

// Load 从 gdata 加载记录
func (rm *RecordManager) Load() error {
	if rm.gdataManager == nil {
		return nil
	}
	if !rm.gdataManager.ObjectPropExists(recordsObject, recordsProperty) {
		rm.data = &RecordData{}
		return nil
	}

	raw, err := rm.gdataManager.LoadObjectProp(recordsObject, recordsProperty)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	var data RecordData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		rm.data = &RecordData{}
		return fmt.Errorf("failed to parse records: %w", err)
	}

	sortRecords(data.Records)
	rm.data = &data
	log.Printf("[RecordManager] Loaded %d records", len(data.Records))
	return nil
}

// Save 保存记录到 gdata，降级模式下直接返回 nil
func (rm *RecordManager) Save() error {
	if rm.gdataManager == nil {
		return nil
	}

	raw, err := yaml.Marshal(rm.data)
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	if err := rm.gdataManager.SaveObjectProp(recordsObject, recordsProperty, raw); err != nil {
		return fmt.Errorf("failed to save records: %w", err)
	}
	return nil
}

// AddRecord 添加一条记录并保存
// 只保留分数最高的 MaxRecords 条
//
// 参数：
//   - score: 最终分数
//   - stage: 结束时的关卡
//   - cleared: 是否通关
//
// 返回：
//   - ScoreRecord: 新记录
//   - int: 新记录的名次（从 0 开始），未进入榜单时为 -1
func (rm *RecordManager) AddRecord(score int, stage string, cleared bool) (ScoreRecord, int) {
	rec := ScoreRecord{
		ID:        uuid.NewString(),
		Score:     score,
		Stage:     stage,
		Cleared:   cleared,
		CreatedAt: time.Now(),
	}

	rm.data.Records = append(rm.data.Records, rec)
	sortRecords(rm.data.Records)
	if len(rm.data.Records) > MaxRecords {
		rm.data.Records = rm.data.Records[:MaxRecords]
	}

	rank := -1
	for i, r := range rm.data.Records {
		if r.ID == rec.ID {
			rank = i
			break
		}
	}

	if err := rm.Save(); err != nil {
		log.Printf("[RecordManager] Warning: %v", err)
	}
	return rec, rank
}

// TopRecords 返回前 n 条记录的副本
func (rm *RecordManager) TopRecords(n int) []ScoreRecord {
	if n > len(rm.data.Records) {
		n = len(rm.data.Records)
	}
	out := make([]ScoreRecord, n)
	copy(out, rm.data.Records[:n])
	return out
}

// BestScore 返回最高分，无记录时为 0
func (rm *RecordManager) BestScore() int {
	if len(rm.data.Records) == 0 {
		return 0
	}
	return rm.data.Records[0].Score
}

// MarkStageCleared 记录通关的关卡
func (rm *RecordManager) MarkStageCleared(stage string) {
	if rm.IsStageCleared(stage) {
		return
	}
	rm.data.ClearedStages = append(rm.data.ClearedStages, stage)
	if err := rm.Save(); err != nil {
		log.Printf("[RecordManager] Warning: %v", err)
	}
}

// IsStageCleared 关卡是否已通关
func (rm *RecordManager) IsStageCleared(stage string) bool {
	for _, s := range rm.data.ClearedStages {
		if s == stage {
			return true
		}
	}
	return false
}

// sortRecords 按分数降序，同分时早的在前
func sortRecords(records []ScoreRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Score != records[j].Score {
			return records[i].Score > records[j].Score
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
}
