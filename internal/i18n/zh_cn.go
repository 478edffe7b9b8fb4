package i18n

// ZhCNMessages 简体中文消息目录
// ZhCNMessages Simplified Chinese message catalog
var ZhCNMessages = map[string]string{
	// 任务
	"task.added":     "已添加任务 %s（id %s）。",
	"task.renamed":   "任务 %s 已重命名为 %s。",
	"task.alias_set": "任务 %s 的别名现在是 %s。",
	"task.none":      "还没有任务。用 `tt add NAME` 添加一个。",

	// 事件状态迁移
	"event.started":       "已为 %[2]s 开始事件 %[1]s。",
	"event.split":         "已分段。目前工作时长：%s。",
	"event.split_carried": "本段不超过 %d 分钟，继续计时。",
	"event.paused":        "已暂停。",
	"event.pause_short":   "本段过短，已丢弃。已暂停。",
	"event.resumed":       "已继续。",
	"event.resume_short":  "暂停过短，已丢弃。已继续。",
	"event.auto_stopped":  "暂停达到 %d 分钟：事件 %s 已结束，新事件 %s 已开始。",
	"event.stopped":       "事件 %s 已结束。工作时长：%s。",
	"event.discarded":     "事件 %s 不超过 %d 分钟，已丢弃。",
	"event.deleted":       "已删除事件 %s。",
	"event.notes_set":     "事件 %s 的备注已保存。",

	// 标签
	"label.id":           "ID",
	"label.task":         "任务",
	"label.alias":        "别名",
	"label.status":       "状态",
	"label.started":      "开始",
	"label.work":         "工作",
	"label.productivity": "效率",
	"label.laps":         "分段",
	"label.notes":        "备注",
	"label.kind":         "类型",
	"label.start":        "起",
	"label.end":          "止",
	"label.length":       "时长",
	"label.date":         "日期",

	// 状态与分段类型
	"status.running": "进行中",
	"status.pausing": "暂停中",
	"status.stopped": "已结束",
	"lap.split":      "工作",
	"lap.pause":      "暂停",

	// 列表
	"list.empty":  "没有事件。",
	"list.total":  "共 %[2]d 个事件，工作 %[1]s。",
	"list.recent": "最近 %d 个事件",

	// 合并
	"merge.preview": "预览：%d 个事件将合并为 %s。加 --yes 重新执行以生效。",
	"merge.applied": "已将 %d 个事件合并为 %s。",

	// 确认
	"confirm.delete":  "删除事件 %s？[y/N] ",
	"confirm.merge":   "执行合并？[y/N] ",
	"confirm.aborted": "已取消。",
	"confirm.notes":   "事件 %s 的备注：",

	// 配置
	"config.thresholds": "阈值",
	"config.app":        "应用",
	"config.updated":    "%s 已设为 %d 分钟。",
	"config.lang_set":   "语言已设为 %s。",
	"config.db_set":     "数据库路径已设为 %s。",
	"config.minutes":    "%d 分钟",

	// 错误
	"error.no_event":        "还没有事件。用 `tt start TASK` 开始一个。",
	"error.in_progress":     "上一个事件尚未结束，请先结束它。",
	"error.not_running":     "事件未在进行中。",
	"error.not_pausing":     "事件未暂停。",
	"error.already_stopped": "事件已结束。",
	"error.not_found":       "未找到：%s",
	"error.task_exists":     "已存在同名任务：%s",
	"error.bad_task_name":   "%s。只能使用字母、数字、'_'、'-' 或 '.'。",
	"error.bad_date":        "日期格式错误：%s",
	"error.merge":           "无法合并：%s",
	"error.usage":           "用法：%s",
	"error.unknown_command": "未知命令 %q。运行 `tt help` 查看帮助。",
	"error.generic":         "错误：%v",

	// 实时视图
	"watch.title":  "tt watch",
	"watch.idle":   "没有进行中的事件。用 `tt start TASK` 开始一个。",
	"watch.split":  "分段",
	"watch.pause":  "暂停",
	"watch.resume": "继续",
	"watch.stop":   "结束",
	"watch.quit":   "退出",

	// 帮助
	"help.body": `# tt：专注计时

## 任务
- ` + "`tt add NAME [--alias A]`" + ` 添加任务
- ` + "`tt tasks`" + ` 列出任务
- ` + "`tt alias NAME ALIAS`" + ` 设置别名
- ` + "`tt rename OLD NEW`" + ` 重命名任务

## 事件
- ` + "`tt start TASK`" + ` 开始事件（名称或别名）
- ` + "`tt split`" + ` 结束当前工作分段
- ` + "`tt pause`" + ` / ` + "`tt resume`" + ` 暂停与继续
- ` + "`tt stop`" + ` 结束事件
- ` + "`tt status [ID]`" + ` 查看最近（或指定）事件
- ` + "`tt list [-n N | --day YYYY-MM-DD | --month YYYY-MM]`" + ` 列出事件
- ` + "`tt notes ID TEXT`" + ` 设置备注
- ` + "`tt delete ID [--yes]`" + ` 删除事件
- ` + "`tt merge ID ID... [--yes]`" + ` 合并相邻事件（不加 --yes 时只预览）
- ` + "`tt watch`" + ` 实时视图

## 设置
- ` + "`tt config`" + ` 查看设置
- ` + "`tt config set split_min|pause_min|pause_max MINUTES`" + `
- ` + "`tt lang en|zh-CN`" + `
- ` + "`tt db PATH`" + `
- ` + "`tt version`" + `
`,
}
