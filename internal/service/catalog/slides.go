package catalog

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/weiwangfds/arsongs/internal/logger"
	"gopkg.in/yaml.v3"
)

// slidesPerPage 首页轮播数量
const slidesPerPage = 3

// Slide 首页轮播项
type Slide struct {
	ID          int    `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Image       string `yaml:"image" json:"image"`
	Link        string `yaml:"link" json:"link"`
}

// SlidesConfig 轮播配置文件结构
type SlidesConfig struct {
	InterestedSlideIDs []int   `yaml:"interested_slide_ids"`
	Slides             []Slide `yaml:"slides"`
}

// SlideService 首页轮播服务接口
type SlideService interface {
	// Slides 返回本次展示的轮播
	// 重点轮播排在前面，剩余位置从其他轮播中随机选取
	Slides() []Slide
}

type slideService struct {
	cfg     SlidesConfig
	shuffle func(n int, swap func(i, j int))
}

// NewSlideService 创建轮播服务实例
func NewSlideService(cfg SlidesConfig) SlideService {
	return &slideService{cfg: cfg, shuffle: rand.Shuffle}
}

// LoadSlides 从YAML文件加载轮播配置，文件不存在时返回空配置
func LoadSlides(path string) (SlidesConfig, error) {
	var cfg SlidesConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warnf("轮播配置文件不存在: %s", path)
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read slides file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse slides file: %w", err)
	}
	logger.Infof("已加载 %d 个轮播", len(cfg.Slides))
	return cfg, nil
}

func (s *slideService) Slides() []Slide {
	interested := make(map[int]bool, len(s.cfg.InterestedSlideIDs))
	for _, id := range s.cfg.InterestedSlideIDs {
		interested[id] = true
	}

	selected := []Slide{}
	var remaining []Slide
	for _, slide := range s.cfg.Slides {
		if interested[slide.ID] {
			selected = append(selected, slide)
		} else {
			remaining = append(remaining, slide)
		}
	}

	need := slidesPerPage - len(selected)
	if need <= 0 {
		return selected
	}
	if need > len(remaining) {
		need = len(remaining)
	}
	s.shuffle(len(remaining), func(i, j int) {
		remaining[i], remaining[j] = remaining[j], remaining[i]
	})
	return append(selected, remaining[:need]...)
}
